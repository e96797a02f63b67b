// Package forms holds the client-side form state for Inventorly: field error
// maps, phone number formatting, registration and item validation, money
// parsing and the verification resend countdown. Nothing here performs I/O.
package forms
