// Package quiz holds the session workflow of the vocabulary quiz: picking
// the words for a session, tracking the session state and grading the
// learner's answers against reference translations.
package quiz
