package internal

// Version is the current vocabquiz release.
const Version = "0.3.0"
