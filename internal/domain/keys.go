package domain

// KeyPrefix is the default namespace for keys written to the shared store.
const KeyPrefix = "docdex:"
