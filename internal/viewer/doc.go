package viewer

// Package viewer holds the pure zoom/pan/fullscreen state for the displayed
// image. It performs no I/O; the ui package feeds it input events and
// renders whatever transform it reports.
