// Package lib provide small statistical helpers used by the ordered
// map implementations to book-keep tree shape and write costs. They
// shall not depend on anything other than the standard library.
package lib
