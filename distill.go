// Package distill extracts structured information from web pages. It cleans
// raw HTML down to plain text, splits the text into bounded chunks, asks a
// language model to extract what the caller described from every chunk, and
// recombines the partial answers into one result with a confidence score.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, openai/).
package distill
