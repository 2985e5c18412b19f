package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/matchit/ai"
)

const extractionPromptTemplate = `You are an AI trained to extract attributes from text. Extract relevant
attributes as a valid JSON object with no additional text before or after.
For example: {"color": "red", "size": "large"}.

Rules:
- Recognized attribute families: %s. Use the key "type" for the kind of
  thing being asked about (item, shop, job, event, service).
- Use the key "distance" for a maximum search distance in kilometers,
  as a plain number.
- Keys must be lowercase. Values are short strings.
- If an attribute is not present in the text, omit it from the response.
- If no attributes can be identified, return {}.
- Output ONLY the JSON object. No markdown fences, no preamble, no
  trailing commentary. Start with { and end with }.`

const compositionSystemPrompt = `You are a helpful assistant. Provide detailed information based on the
matching item from the database, including distance information when
available.`

const compositionInstructions = `Please provide a good response based on the matching item from our
database. Tell it in a human readable manner and not in the form of
key:value pairs in the way it is stored by computers. Leave out
similarity scores because those are for the computer to understand and
not for humans to know. Tell detailed information about the highest
similarity thing only. Mention distances in kilometers every time,
never as longitudes/latitudes. Tell it short and sweet within %d tokens.`

// extractionSystemPrompt builds the extraction instruction with the
// recognized attribute families embedded.
func extractionSystemPrompt() string {
	return fmt.Sprintf(extractionPromptTemplate, strings.Join(ai.AttributeKeys, ", "))
}

// compositionInstructionsFor builds the composition instruction for
// the configured token budget.
func compositionInstructionsFor(maxTokens int) string {
	return fmt.Sprintf(compositionInstructions, maxTokens)
}
