// Package generator wires the loader → adapter → classifier → synthesizer →
// emitter pipeline behind a single entry point. Every stage can be replaced
// through functional options; missing ones default to the built-in
// implementations configured from config.Config.
package generator
