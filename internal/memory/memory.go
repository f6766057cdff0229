/*
 * p16sim - Data memory.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package memory is the 512-byte data memory backing a PIC16F banked
// address space. It knows nothing about banking, indirection, or control
// registers; those live in cpu's address map, which is the only caller.
package memory

// Size is the width of the physical banked address space this core
// addresses: 4 banks of 128 bytes.
const Size = 512

// RAM is a fixed-size, instance-owned byte array. Unlike the teacher's
// package-level memory singleton (emu/memory), every Core owns its own RAM
// so that multiple cores never share state.
type RAM struct {
	data [Size]byte
}

// Read returns the byte at a 9-bit physical address. Addresses are always
// produced by the caller's bank/indirection logic and are not range-checked
// here; an address past the array is folded back modulo Size.
func (r *RAM) Read(addr uint16) uint8 {
	return r.data[addr%Size]
}

// Write stores a byte at a 9-bit physical address.
func (r *RAM) Write(addr uint16, v uint8) {
	r.data[addr%Size] = v
}

// Snapshot returns a copy of the full backing array, for observability
// (the §6 "512-byte data memory" exposed observable).
func (r *RAM) Snapshot() [Size]byte {
	return r.data
}
