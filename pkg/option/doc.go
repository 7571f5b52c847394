// Package option is the runtime companion of generated builders. Option[T]
// is the "may be absent" wrapper that generated builder slots and optional
// record fields are declared with, and NotSetError is the value a Build call
// returns when a mandatory field was never set.
package option
