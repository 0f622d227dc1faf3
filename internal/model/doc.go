package model

// Package model defines domain data structures used across the app: generation
// requests and jobs, the model catalogue, prompt history entries, and status
// enums. Structures are designed for direct binding in the UI and explicit
// state transitions.
