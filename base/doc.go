/*

Package base provides base data structures and functions for gorse-split.

The base data structures and functions include:

* Random Generator

* Delimited Line Reader

*/
package base
