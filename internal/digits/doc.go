// Package digits holds the base-10 digit vector shared by every
// multiplication engine: conversion to and from decimal strings, carry
// normalization, and the elementwise helpers used to evaluate and
// interpolate split operands.
//
// Vectors are little-endian. Engines work on raw vectors whose entries may
// be negative or exceed 9; only Normalize and Decode produce canonical
// output.
package digits
