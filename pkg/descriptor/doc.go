// Package descriptor implements the YAML structural-description adapter.
//
// A descriptor file names the Go package, the imports its type expressions
// need, and an ordered mapping of records:
//
//	package: models
//	imports:
//	  - time
//	  - opt github.com/goliatone/go-buildergen/pkg/option
//	records:
//	  # User is a person.
//	  User:
//	    name: string
//	    age: opt.Option[uint8]  # optional
//	    seen:
//	      type: time.Time
//	      tag: json:"seen"
//	  Pair[K comparable, V any]:
//	    key: K
//	    value: opt.Option[V]
//
// Field order is the order of the mapping keys. YAML comments attached to a
// record or field become its doc comment. Type expressions starting with a
// YAML indicator ("[]T", "*T") must be quoted. Records described by a
// sequence are tuple-style aggregates and are rejected.
package descriptor
