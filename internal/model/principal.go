package model

// Principal is an authenticated caller identity recognized by the ledger.
// Principals are opaque address strings; the HTTP layer derives them
// deterministically from registered accounts, and the registry core treats
// them as plain values with no further structure.
type Principal string

// None is the zero Principal, used where an operation reports "no owner".
const None Principal = ""
