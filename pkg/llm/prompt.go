package llm

import (
	"encoding/json"
	"fmt"
)

const sentimentPromptTemplate = "Give me a 2 sentence analysis of the stock with the ticker %s. " +
	"Use up to date information in your analysis from %s. " +
	"Focus on news that is affecting the stock price and most generally relevant. Avoid em dashes."

// sentimentPrompt embeds the descriptions as a JSON array; missing descriptions
// are passed through as null.
func sentimentPrompt(ticker string, descriptions []*string) string {
	if descriptions == nil {
		descriptions = []*string{}
	}
	encoded, err := json.Marshal(descriptions)
	if err != nil {
		encoded = []byte("[]")
	}
	return fmt.Sprintf(sentimentPromptTemplate, ticker, encoded)
}
