// Package generation defines the DescriptionGenerator capability that
// drafts a task description from its title, along with the built-in
// template generator and a fallback combinator. LLM-backed implementations
// such as the Gemini adapter live under internal/platform.
package generation
