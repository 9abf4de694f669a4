// Package scaffold discovers the bitcore-node-divi configuration file by
// ascending from a working directory towards the filesystem root. The first
// directory holding the file wins; its JSON content is parsed and returned
// together with the directory path.
package scaffold
