package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// Agent is the AI assistant that handles the chat session.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert
	// Render formats the facilitator's markdown answers before they are
	// printed, answers are printed as is if nil.
	Render func(markdown string) string
}

// New creates a new Agent.
//
// It takes an io.Writer for the agent's output (e.g., os.Stdout), an io.Reader
// for user input (e.g., os.Stdin), the model of the facilitator and the experts
// the facilitator can ask.
func New(w io.Writer, r io.Reader, model string, experts ...*Expert) *Agent {
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(model, experts...),
	}
}

// Start creates the Gemini chats of all the experts and the facilitator.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	if err := a.Facilitator.Start(ctx, client); err != nil {
		return err
	}
	return nil
}

const prompt = "assist> "

// Run starts the interactive session: it reads questions until "bye" or the
// end of the input, and prints the facilitator's answers.
//
// prompts are sent first, as if the user typed them.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to wrap assist. Type 'bye' to exit.")
	for {
		var input string
		var err error
		input, prompts, err = a.next(prompts)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if input == "" {
			continue
		}
		if input == "bye" {
			return nil
		}

		logrus.WithField("question", input).Debug("asking the facilitator")
		content, err := a.Facilitator.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		answer := content.Parts[0].Text
		if a.Render != nil {
			answer = a.Render(answer)
		}
		fmt.Fprintln(a.w, answer)
	}
}

// next prints the prompt and returns the next question, from prompts first
// and then from the user. It returns the prompts left.
func (a *Agent) next(prompts []string) (string, []string, error) {
	fmt.Fprint(a.w, prompt)
	if len(prompts) > 0 {
		input := strings.TrimSpace(prompts[0])
		fmt.Fprintln(a.w, input)
		return input, prompts[1:], nil
	}
	input, err := a.r.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", nil, err
	}
	return strings.TrimSpace(input), nil, nil
}
