//go:build linux

package ui

import (
	"encoding/binary"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"unsafe"
)

// Linux input event constants
const (
	evKey   = 0x01
	keyBack = 158 // KEY_BACK, the phone-style back button on remotes and tablets
)

// inputEventSize is the size of a Linux input_event struct (timeval + u16 + u16 + s32).
var inputEventSize = int(unsafe.Sizeof(struct {
	Sec, Usec int64
	Type      uint16
	Code      uint16
	Value     int32
}{}))

var backKeyPressed atomic.Bool

func init() {
	go watchBackKey()
}

// watchBackKey reads every /dev/input/event* device the user may open.
func watchBackKey() {
	matches, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(matches) == 0 {
		return
	}
	for _, path := range matches {
		go readBackKey(path)
	}
}

func readBackKey(path string) {
	f, err := os.Open(path)
	if err != nil {
		// Usually a permission error; most devices are root-only.
		return
	}
	defer f.Close()

	buf := make([]byte, inputEventSize)
	for {
		if _, err := f.Read(buf); err != nil {
			return
		}
		// type at offset 16, code at 18, value at 20
		typ := binary.LittleEndian.Uint16(buf[16:18])
		code := binary.LittleEndian.Uint16(buf[18:20])
		value := int32(binary.LittleEndian.Uint32(buf[20:24]))
		if typ == evKey && code == keyBack && value == 1 {
			log.Printf("Input: back key on %s", filepath.Base(path))
			backKeyPressed.Store(true)
		}
	}
}

// takeBackKey reports whether the hardware back key went down since the
// last call.
func takeBackKey() bool {
	return backKeyPressed.CompareAndSwap(true, false)
}
