// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.
//
// Contract shared by all repositories: "not found" on a direct lookup is a
// nil result with a nil error; every failure is a *StorageError.
package repository
