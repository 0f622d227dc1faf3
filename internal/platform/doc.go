package platform

// Package platform contains OS integration: filesystem helpers, atomic
// writes, standard user directories, and OS open/reveal of files.
