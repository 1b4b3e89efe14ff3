// Package gemini implements [toolrun.ModelClient] for the Google Gemini API.
//
// It wraps the google.golang.org/genai SDK, translating between toolrun's
// transcript types and the Gemini API types. Tool descriptors become
// function declarations whose parameters are the tool's JSON schema,
// passed through unchanged.
package gemini

const defaultModel = "gemini-2.0-flash"
