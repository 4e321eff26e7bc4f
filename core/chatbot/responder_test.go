package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestResponder(t *testing.T, picker Picker) *Responder {
	t.Helper()
	table, err := DefaultTable()
	require.NoError(t, err)
	r, err := New(table, picker)
	require.NoError(t, err)
	return r
}

func responsesOf(t *testing.T, r *Responder, name string) []string {
	t.Helper()
	cat, ok := r.Table().Category(name)
	require.True(t, ok, "category %q not found", name)
	return cat.Responses
}

func TestResponder_Classify(t *testing.T) {
	r := newTestResponder(t, nil)

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{name: "empty", message: "", want: Default},
		{name: "no letters", message: "12345 !!! ???", want: Default},
		{name: "no trigger", message: "xyzzy plugh", want: Default},
		{name: "upper case", message: "HELLO", want: Greeting},
		{name: "title case", message: "Hello", want: Greeting},
		{name: "lower case", message: "hello", want: Greeting},
		{name: "hey", message: "hey there!", want: Greeting},
		{name: "greeting before courses", message: "Hi, what courses do you offer?", want: Greeting},
		{name: "hidden hi", message: "Which programs are available?", want: Greeting},
		{name: "goodbye", message: "goodbye", want: Farewell},
		{name: "bye", message: "thanks, see you, bye", want: Farewell},
		{name: "help", message: "can you help me?", want: Help},
		{name: "what can you do", message: "What can you do", want: Help},
		{name: "course", message: "Tell me about the courses", want: Courses},
		{name: "study", message: "I want to study engineering", want: Courses},
		{name: "professor", message: "Who is the professor for maths?", want: Faculty},
		{name: "faculty before facilities", message: "Is there a teacher available?", want: Faculty},
		{name: "laboratory", message: "Where is the computer laboratory?", want: Facilities},
		{name: "campus", message: "ABOUT CAMPUS", want: Facilities},
		{name: "lab inside label", message: "I need a label printer", want: Facilities},
		{name: "admission", message: "Tell me about the admission process", want: Admission},
		{name: "apply inside applying", message: "I am applying for graduate school", want: Admission},
		{name: "enroll", message: "How do I enroll?", want: Admission},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Classify(tt.message))

			// classification is deterministic, the reply must come from the same category
			for i := 0; i < 20; i++ {
				reply := r.Reply(tt.message)
				assert.Equal(t, tt.want, reply.Category)
				assert.Contains(t, responsesOf(t, r, tt.want), reply.Text)
			}
		})
	}
}

func TestResponder_Respond(t *testing.T) {
	r := newTestResponder(t, nil)

	t.Run("greeting example", func(t *testing.T) {
		want := []string{
			"Hello! How can I help you today?",
			"Hi there! What can I do for you?",
			"Hey! How can I assist you?",
		}
		assert.Contains(t, want, r.Respond("hey there!"))
	})

	t.Run("admission example", func(t *testing.T) {
		resp := r.Respond("Tell me about the admission process")
		assert.Contains(t, responsesOf(t, r, Admission), resp)
		assert.Regexp(t, `^(For admission inquiries|Admission process includes)`, resp)
	})

	t.Run("never empty", func(t *testing.T) {
		for _, msg := range []string{"", " ", "\n\t", "???", "ÉÀÜ", "日本語"} {
			resp := r.Respond(msg)
			assert.NotEmpty(t, resp)
			assert.Contains(t, responsesOf(t, r, Default), resp, "message %q", msg)
		}
	})

	t.Run("covers every response", func(t *testing.T) {
		seen := make(map[string]int)
		for i := 0; i < 1000; i++ {
			seen[r.Respond("hello")]++
		}
		for _, resp := range responsesOf(t, r, Greeting) {
			assert.NotZero(t, seen[resp], "response %q never selected", resp)
		}
		assert.Len(t, seen, len(responsesOf(t, r, Greeting)))
	})
}

func TestResponder_seeded(t *testing.T) {
	r1 := newTestResponder(t, NewSeededPicker(42))
	r2 := newTestResponder(t, NewSeededPicker(42))

	for i := 0; i < 50; i++ {
		assert.Equal(t, r1.Respond("hello"), r2.Respond("hello"))
	}
}

func TestResponder_pickerIndex(t *testing.T) {
	tests := []struct {
		name   string
		picker Picker
		want   string
	}{
		{name: "first", picker: PickerFunc(func(int) int { return 0 }), want: "Hello! How can I help you today?"},
		{name: "last", picker: PickerFunc(func(n int) int { return n - 1 }), want: "Hey! How can I assist you?"},
		{name: "negative", picker: PickerFunc(func(int) int { return -1 }), want: "Hey! How can I assist you?"},
		{name: "overflow", picker: PickerFunc(func(n int) int { return n + 1 }), want: "Hi there! What can I do for you?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResponder(t, tt.picker)
			assert.Equal(t, tt.want, r.Respond("hello"))
		})
	}
}

func TestResponder_concurrent(t *testing.T) {
	r := newTestResponder(t, NewSeededPicker(7))
	greetings := responsesOf(t, r, Greeting)
	courses := responsesOf(t, r, Courses)

	var g errgroup.Group
	for w := 0; w < 32; w++ {
		g.Go(func() error {
			for i := 0; i < 200; i++ {
				if resp := r.Respond("Hello"); !contains(greetings, resp) {
					t.Errorf("Respond(Hello) = %q; not a greeting", resp)
				}
				if resp := r.Respond("any course on robotics?"); !contains(courses, resp) {
					t.Errorf("Respond(course) = %q; not a courses reply", resp)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestNew_emptyTable(t *testing.T) {
	_, err := New(Table{}, nil)
	assert.Equal(t, errNoCategories, err)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
