package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidRequirement is returned when a requirement or lock line cannot be parsed.
	ErrInvalidRequirement = zerr.New("invalid requirement")

	// ErrDuplicateDependency is returned when a lock document lists the same dependency twice.
	ErrDuplicateDependency = zerr.New("duplicate dependency in lock document")

	// ErrRuntimeUnavailable is returned when no usable interpreter could be provisioned.
	ErrRuntimeUnavailable = zerr.New("runtime unavailable")

	// ErrRequirementsNotFound is returned when the requirements file is missing.
	ErrRequirementsNotFound = zerr.New("requirements file not found")

	// ErrStoreLocked is returned when the store lock could not be acquired.
	ErrStoreLocked = zerr.New("environment store is locked")

	// ErrStoreContainsBase is returned when the environment store is the base
	// directory or one of its parents, where pruning would delete project files.
	ErrStoreContainsBase = zerr.New("environment store must not contain the base directory")

	// ErrProgramNotFound is returned when the program to launch does not exist in the environment.
	ErrProgramNotFound = zerr.New("program not found in environment")
)
