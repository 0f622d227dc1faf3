package negotiate

// Package negotiate derives generation dimensions from the viewer's aspect
// ratio and a user scale factor, honouring the service's divisibility and
// range constraints. It also provides the trailing-window debouncer that
// keeps interactive window resizing from producing a storm of
// recomputations.
