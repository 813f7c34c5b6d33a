/*
Package markov provides a generic, variable-order Markov chain model for
sequences of discrete symbols.

A model is trained from a corpus of sequences with a Builder (or the Train
helpers) and is immutable afterwards. Generation performs a random walk from
the start of a chain, using a caller-supplied random source, until the chain
ends, a context has no known continuation, or a length bound is reached.
Models are safe for concurrent use by multiple generators as long as each
one has its own random source.

TextModel specializes the model to the characters of words.
*/
package markov
