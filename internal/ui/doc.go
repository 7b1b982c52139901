// Package ui is the application core: a single Bubble Tea model that owns
// every piece of UI-visible state. All mutation happens inside Update, one
// message at a time; background fetches communicate exclusively by posting
// completion messages tagged with their slot correlation. Rendering reads
// the model and never writes it.
package ui
