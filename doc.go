/*
Package vfhe provides a pure Go implementation of verifiable programmable bootstrapping for the TFHE scheme
over the Goldilocks prime field. The blind rotation is expressed once over an abstract arithmetic engine, so that
the same code runs natively, generates and checks the execution trace of a STARK-style proof system, and
compiles to gnark circuits.
*/
package vfhe
