package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/elk-language/go-prompt"
	istrings "github.com/elk-language/go-prompt/strings"

	"github.com/quocvuong92/devconsole/internal/console"
	"github.com/quocvuong92/devconsole/internal/constants"
	"github.com/quocvuong92/devconsole/internal/display"
)

// InteractiveSession holds the state for an interactive console session.
type InteractiveSession struct {
	app      *App
	session  *Session
	spinner  *display.Spinner
	exitFlag bool
}

// completer suggests command names for the word being typed when it is the
// first word of a stage.
func (s *InteractiveSession) completer(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
	endIndex := d.CurrentRuneIndex()
	w := d.GetWordBeforeCursor()
	startIndex := endIndex - istrings.RuneCountInString(w)

	return prompt.FilterHasPrefix(s.suggestions(d.TextBeforeCursor()), w, true), startIndex, endIndex
}

// suggestions returns the candidates for text, the input before the cursor.
func (s *InteractiveSession) suggestions(text string) []prompt.Suggest {
	stage := text
	if i := strings.LastIndex(text, console.PipeSeparator); i >= 0 {
		stage = text[i+1:]
	}
	stage = strings.TrimLeft(stage, " ")
	if strings.Contains(stage, " ") {
		return nil
	}

	c := s.session.console
	suggestions := []prompt.Suggest{
		{Text: constants.HelpCommand, Description: "List commands, or help <name>"},
	}
	for _, r := range c.Commands() {
		suggestions = append(suggestions, prompt.Suggest{Text: r.Name, Description: r.Command.Usage()})
	}
	if !strings.Contains(text, console.PipeSeparator) {
		suggestions = append(suggestions,
			prompt.Suggest{Text: "exit", Description: "Exit interactive mode"},
		)
	}
	return suggestions
}

// runInteractive starts the REPL and runs until exit, Ctrl+C or Ctrl+D.
func (app *App) runInteractive() error {
	session, err := app.openSession(os.Stdout)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			display.ShowError(err.Error())
		}
	}()

	session.console.SetActive(true)
	defer session.console.SetActive(false)

	fmt.Println("devconsole - Interactive Mode")
	fmt.Println("Type 'help' for commands, 'exit' or Ctrl+D to quit")
	fmt.Println("Separate stages with '|', recall input with !! or !N")
	fmt.Println()

	s := &InteractiveSession{
		app:     app,
		session: session,
		spinner: display.NewSpinner("running", display.IsTerminal(os.Stderr)),
	}

	p := prompt.New(
		s.executor,
		prompt.WithCompleter(s.completer),
		prompt.WithHistory(session.history.Chronological()),
		prompt.WithPrefix("> "),
		prompt.WithTitle(constants.AppName),
		prompt.WithPrefixTextColor(prompt.Green),
		prompt.WithSuggestionBGColor(prompt.DarkBlue),
		prompt.WithSuggestionTextColor(prompt.White),
		prompt.WithSelectedSuggestionBGColor(prompt.Cyan),
		prompt.WithSelectedSuggestionTextColor(prompt.Black),
		prompt.WithDescriptionBGColor(prompt.DarkBlue),
		prompt.WithDescriptionTextColor(prompt.LightGray),
		prompt.WithMaxSuggestion(10),
		prompt.WithExitChecker(func(in string, breakline bool) bool {
			return s.exitFlag
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlC,
			Fn: func(p *prompt.Prompt) bool {
				fmt.Println("\nGoodbye!")
				s.exitFlag = true
				return false
			},
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlD,
			Fn: func(p *prompt.Prompt) bool {
				if p.Buffer().Text() == "" {
					fmt.Println("Goodbye!")
					s.exitFlag = true
				}
				return false
			},
		}),
	)

	p.Run()
	return nil
}

// executor runs each input line through the console.
func (s *InteractiveSession) executor(input string) {
	if s.exitFlag {
		return
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return
	}

	switch strings.ToLower(input) {
	case "exit", "quit":
		fmt.Println("Goodbye!")
		s.exitFlag = true
		return
	}

	display.ShowResult(os.Stdout, s.run(input), s.app.color)
}

// run processes input while the spinner owns the terminal and returns the
// rendered result.
func (s *InteractiveSession) run(input string) string {
	s.session.surface.Hold()
	s.spinner.Start()
	result := s.session.Process(input)
	s.spinner.Stop()
	s.session.surface.Flush()

	if s.app.cfg.Render && result != "" {
		return strings.TrimRight(display.RenderMarkdown(result), "\n")
	}
	return result
}
