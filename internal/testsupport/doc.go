// Package testsupport holds helpers shared by package tests: temp-directory
// configs, stubbed tool binaries and synthetic chapter and audio fixtures.
package testsupport
