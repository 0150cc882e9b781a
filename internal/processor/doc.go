// Package processor wires the quiz together: it loads the word bank, draws
// a session, grades the answers against reference translations and writes
// the exports. It drives the terminal and batch modes directly and serves
// the GUI through the gui.QuizService interface.
package processor
