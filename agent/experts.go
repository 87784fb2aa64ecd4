package agent

import (
	"google.golang.org/genai"
)

// creates the facilitator
func newFacilitator(model string, experts ...*Expert) *Expert {
	return &Expert{
		Name:        "Facilitator",
		Description: ``,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here to hear the story of a trader's year, or to understand a bank account balance.
			Devise a plan of questions to ask to each expert and come up with the best response to the user's request.
			Answer in markdown.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewTrader returns an expert grounded on Google Search.
func NewTrader(model string) *Expert {
	return &Expert{
		Name: "Trader",
		Description: `This is an expert trader,
		Very well aware of all the financial products and institutions,
		about the latest news about the different funds or companies.
		Ask the Trader whenever you need recent or grounding information, for instance about an ISIN.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a expert in Trading, you can search and find about anything related to
			financial institutions, companies, markets, funds etc. You Leverage Google Search to
			ground your assertions in a solid truth.
				`}}},
		},
	}
}

// NewStoryteller returns the expert reading the ledgers of data.
func NewStoryteller(model string, data *Data) *Expert {
	lib := data.Functions()
	return &Expert{
		Name: "Storyteller",
		Description: `This is the Storyteller. It reads the trade and banking ledgers and knows every trader's
		yearly insights, persona and rank in the community, and every user's bank balance.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You tell the story of a trader's year from the figures the Tools give you.
				Never invent a figure: every number you quote must come from a Tool.
				Keep the tone upbeat and personal, like a year-end recap.

				Use the available tools to get
				  - a user's thirteen insights (wrapped_insights)
				  - a user's balance report (balance_report)
				  - the list of traders and their key figures (community)
				  - the documentation explaining how figures are computed (topic)
			`}}},
		},
		Library: NewLibrary(lib),
	}
}
