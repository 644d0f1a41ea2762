// Package llm talks to the hosted language model. It performs exactly one
// request per call and classifies every failure into an *Error whose
// Message can be shown to the user. There is no retry, caching or rate
// limiting.
package llm
