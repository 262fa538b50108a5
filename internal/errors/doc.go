// Package errors provides structured, actionable error messages for eimctl.
//
// Each error has a code (e.g., "E120") that maps to a short message and a
// longer explanation. Callers add the specifics and a hint:
//
//	err := errors.New("E130").
//	    WithDetail("dial ws://127.0.0.1:8088: connection refused").
//	    WithSuggestion("Start the EIM backend or pass --backend")
//
//	errors.PrintError(os.Stderr, err)
//	// ERROR E130: Backend unreachable
//	//
//	//   dial ws://127.0.0.1:8088: connection refused
//	//
//	//   Hint: Start the EIM backend or pass --backend
package errors
