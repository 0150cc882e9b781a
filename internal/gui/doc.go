// Package gui is the desktop front end of the quiz, built with fyne. It
// shows the drawn words with one answer entry each, grades them through a
// QuizService and offers the PDF download.
package gui
