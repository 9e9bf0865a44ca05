// Package testsupport builds isolated configs and fixture files for tests.
package testsupport
