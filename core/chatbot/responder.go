// Package chatbot classifies campus chat messages by keyword and answers them with canned replies.
package chatbot

import "strings"

// Reply is a response text along with the category it was drawn from.
type Reply struct {
	Category string `json:"category"`
	Text     string `json:"response"`
}

// Responder matches messages against an ordered category Table.
// It holds no mutable state and is safe for concurrent use.
type Responder struct {
	table  Table
	picker Picker
}

// New returns a Responder over table. A nil picker falls back to DefaultPicker.
func New(table Table, picker Picker) (*Responder, error) {
	if len(table.categories) == 0 {
		return nil, errNoCategories
	}
	if picker == nil {
		picker = DefaultPicker
	}
	return &Responder{table: table, picker: picker}, nil
}

// Table returns the category table in use.
func (r *Responder) Table() Table { return r.table }

// Classify returns the name of the first category matching message.
// Matching is on lowercase substrings, so "Hi, any courses?" is a greeting.
func (r *Responder) Classify(message string) string {
	return r.table.match(normalize(message)).Name
}

// Respond returns one reply, picked at random, from the category matching message.
func (r *Responder) Respond(message string) string {
	return r.Reply(message).Text
}

// Reply classifies message and picks one of its category's responses.
func (r *Responder) Reply(message string) Reply {
	cat := r.table.match(normalize(message))
	n := len(cat.Responses)
	i := r.picker.Pick(n)
	if i < 0 || i >= n {
		i = ((i % n) + n) % n
	}
	return Reply{Category: cat.Name, Text: cat.Responses[i]}
}

func normalize(message string) string {
	return strings.ToLower(message)
}
