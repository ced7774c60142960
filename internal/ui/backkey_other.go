//go:build !linux

package ui

func takeBackKey() bool { return false }
