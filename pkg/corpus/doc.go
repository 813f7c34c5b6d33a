/*
Package corpus stores named collections of training words in a SQLite
database and splits free text into words for them.

A corpus holds each distinct word once together with the number of times it
was added, so repeated words keep their weight when the corpus is loaded back
for training. Trained models are never stored here.
*/
package corpus
