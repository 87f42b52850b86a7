// Copyright 2022-2026 The evmcore Authors
// This file is part of the evmcore library.
//
// The evmcore library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The evmcore library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the evmcore library. If not, see <http://www.gnu.org/licenses/>.

package vm

import "github.com/holiman/uint256"

// emissionResult is the emitter's raw output, before jump resolution
// rewrites any jump_unresolved/conditional_jump_unresolved entries into
// their resolved forms.
type emissionResult struct {
	instructions    InstructionStream
	pcToInstruction []uint16 // indexed by pc; SentinelInstructionIndex if unmapped
	pcOfInstruction []int32  // indexed by instruction index; -1 if synthetic
	jumpKind        []JumpKind
}

// emitter drives the single forward pass over decoded bytecode that
// produces the instruction stream, injecting block_begin headers and
// applying the fixed-lookback peephole optimizations of §4.5 as it goes.
type emitter struct {
	code  []byte
	table JumpTable

	instructions    InstructionStream
	pcToInstruction []uint16
	pcOfInstruction  []int32
	jumpKind        []JumpKind

	blockOpen  bool
	curBlock   BlockAnalysis
	blockStates []BlockAnalysis // snapshot of curBlock before each instruction in the open block
}

func emit(code []byte, table JumpTable) (*emissionResult, error) {
	e := &emitter{
		code:            code,
		table:           table,
		instructions:    getInstructionBuffer(),
		pcToInstruction: getPCInstructionBuffer(len(code)),
		pcOfInstruction: make([]int32, 0, len(code)+2),
		jumpKind:        make([]JumpKind, 0, len(code)+2),
	}

	codeLen := len(code)
	if codeLen > 0 {
		if err := e.openBlock(); err != nil {
			return nil, err
		}
	}

	pc := 0
	iterations := 0
	for pc < codeLen {
		iterations++
		if iterations > decoderSafetyCap {
			return nil, ErrInstructionLimitExceeded
		}

		op := OpCode(code[pc])
		meta := e.table[op]
		if meta == nil || meta.Undefined {
			meta = e.table[INVALID]
			op = INVALID
		}

		var err error
		switch {
		case op == JUMPDEST:
			err = e.emitJumpdest(pc)
			pc++
		case op == JUMP:
			err = e.emitTerminatingJump(meta, pc, JumpUnresolved(), JumpKindJump)
			pc++
		case op == JUMPI:
			err = e.emitConditionalJump(meta, pc)
			pc++
		case op == STOP || op == RETURN || op == REVERT || op == SELFDESTRUCT || op == INVALID:
			err = e.emitTerminator(op, meta, pc)
			pc++
		case op.IsPush() || op == PUSH0:
			pc, err = e.emitPush(op, meta, pc, codeLen)
		case op == PC:
			err = e.appendObserve(pc, meta, PCInstruction(uint16(pc)))
			pc++
		case isDynamicGasIsolated(op):
			err = e.emitDynamicGas(op, meta, pc, codeLen)
			pc++
		default:
			if !e.tryPeephole(op, pc) {
				err = e.appendObserve(pc, meta, Exec(op))
			}
			pc++
		}
		if err != nil {
			return nil, err
		}
		if len(e.instructions) >= SentinelInstructionIndex {
			return nil, ErrInstructionLimitExceeded
		}
	}

	if e.blockOpen {
		e.closeBlock()
	}

	if needsImplicitStop(e.instructions) {
		if err := e.openBlock(); err != nil {
			return nil, err
		}
		if err := e.appendObserve(-1, e.table[STOP], Exec(STOP)); err != nil {
			return nil, err
		}
		e.closeBlock()
	}

	return &emissionResult{
		instructions:    shrinkToFit(e.instructions),
		pcToInstruction: e.pcToInstruction,
		pcOfInstruction: e.pcOfInstruction,
		jumpKind:        e.jumpKind,
	}, nil
}

// isDynamicGasIsolated reports whether op is one of the exact opcodes
// §4.5 isolates into its own single-instruction block because its gas
// cost has a runtime-dependent component the block analyzer cannot
// precompute. Many other opcodes also have memory-expansion-dependent
// gas in a full implementation, but the emitter contract isolates only
// this fixed set; everything else is accumulated into its block as
// normal.
func isDynamicGasIsolated(op OpCode) bool {
	switch op {
	case GAS, CALL, CALLCODE, DELEGATECALL, STATICCALL, CREATE, CREATE2, SSTORE:
		return true
	}
	return false
}

func needsImplicitStop(instructions InstructionStream) bool {
	for i := len(instructions) - 1; i >= 0; i-- {
		switch instructions[i].Kind {
		case KindBlockBegin:
			continue // skip empty trailing block headers
		case KindExec:
			op := instructions[i].Op
			return !(op == STOP || op == RETURN || op == REVERT || op == SELFDESTRUCT || op == INVALID)
		default:
			return true
		}
	}
	return true
}

func (e *emitter) openBlock() error {
	idx := len(e.instructions)
	if idx >= SentinelInstructionIndex {
		return ErrInstructionLimitExceeded
	}
	e.instructions = append(e.instructions, Instruction{Kind: KindBlockBegin})
	e.pcOfInstruction = append(e.pcOfInstruction, -1)
	e.jumpKind = append(e.jumpKind, JumpKindNone)
	e.curBlock = NewBlockAnalysis(idx)
	e.blockStates = e.blockStates[:0]
	e.blockOpen = true
	return nil
}

func (e *emitter) closeBlock() {
	gas, req, growth := e.curBlock.Close()
	e.instructions[e.curBlock.BeginBlockIndex] = BlockBegin(gas, req, growth)
	e.blockOpen = false
}

// appendObserve emits inst as the next instruction, folding meta into the
// open block's accumulator. pc may be -1 for synthetic instructions with
// no originating bytecode position (the implicit trailing STOP).
func (e *emitter) appendObserve(pc int, meta *OperationMetadata, inst Instruction) error {
	idx := len(e.instructions)
	if idx >= SentinelInstructionIndex {
		return ErrInstructionLimitExceeded
	}
	e.blockStates = append(e.blockStates, e.curBlock)
	e.curBlock.Observe(meta)
	e.instructions = append(e.instructions, inst)
	if pc >= 0 && pc < len(e.pcToInstruction) {
		e.pcToInstruction[pc] = uint16(idx)
	}
	if pc >= 0 {
		e.pcOfInstruction = append(e.pcOfInstruction, int32(pc))
	} else {
		e.pcOfInstruction = append(e.pcOfInstruction, -1)
	}
	e.jumpKind = append(e.jumpKind, JumpKindNone)
	return nil
}

func (e *emitter) setLastJumpKind(k JumpKind) {
	e.jumpKind[len(e.jumpKind)-1] = k
}

// rollback undoes the last n appendObserve calls within the currently
// open block: it restores curBlock to the state recorded before the
// earliest of them, clears their pc->instruction mapping, and truncates
// the stream. Peephole eliminations never reach across a block boundary
// because blockStates is reset on every openBlock.
func (e *emitter) rollback(n int) {
	total := len(e.instructions)
	for i := total - n; i < total; i++ {
		if pc := e.pcOfInstruction[i]; pc >= 0 && int(pc) < len(e.pcToInstruction) {
			e.pcToInstruction[pc] = SentinelInstructionIndex
		}
	}
	e.curBlock = e.blockStates[len(e.blockStates)-n]
	e.instructions = e.instructions[:total-n]
	e.pcOfInstruction = e.pcOfInstruction[:total-n]
	e.jumpKind = e.jumpKind[:total-n]
	e.blockStates = e.blockStates[:len(e.blockStates)-n]
}

func (e *emitter) emitJumpdest(pc int) error {
	if e.blockOpen {
		e.closeBlock()
	}
	if err := e.openBlock(); err != nil {
		return err
	}
	return e.appendObserve(pc, e.table[JUMPDEST], Exec(JUMPDEST))
}

func (e *emitter) emitTerminatingJump(meta *OperationMetadata, pc int, inst Instruction, kind JumpKind) error {
	if err := e.appendObserve(pc, meta, inst); err != nil {
		return err
	}
	e.setLastJumpKind(kind)
	e.closeBlock()
	if pc+1 < len(e.code) {
		return e.openBlock()
	}
	return nil
}

func (e *emitter) emitConditionalJump(meta *OperationMetadata, pc int) error {
	if err := e.appendObserve(pc, meta, ConditionalJumpUnresolved()); err != nil {
		return err
	}
	e.setLastJumpKind(JumpKindJumpI)
	e.closeBlock()
	return e.openBlock() // fall-through path always gets a new block
}

func (e *emitter) emitTerminator(op OpCode, meta *OperationMetadata, pc int) error {
	if err := e.appendObserve(pc, meta, Exec(op)); err != nil {
		return err
	}
	e.closeBlock()
	if pc+1 < len(e.code) {
		return e.openBlock()
	}
	return nil
}

func (e *emitter) emitPush(op OpCode, meta *OperationMetadata, pc, codeLen int) (int, error) {
	n := meta.PushSize
	start := pc + 1
	end := start + n
	truncated := end > codeLen
	if truncated {
		end = codeLen
	}
	effectiveLen := end - start
	if effectiveLen < 0 {
		effectiveLen = 0
	}
	if err := e.appendObserve(pc, meta, Word(uint16(start), uint8(effectiveLen))); err != nil {
		return 0, err
	}
	if truncated {
		return codeLen, nil
	}
	return end, nil
}

func (e *emitter) emitDynamicGas(op OpCode, meta *OperationMetadata, pc, codeLen int) error {
	if e.blockOpen {
		e.closeBlock()
	}
	if err := e.openBlock(); err != nil {
		return err
	}
	if err := e.appendObserve(pc, meta, DynamicGas(op)); err != nil {
		return err
	}
	e.closeBlock()
	if pc+1 < codeLen {
		return e.openBlock()
	}
	return nil
}

// tryPeephole applies the fixed-lookback eliminations of §4.5:
// PUSH0+ADD, PUSH1(1)+MUL, PUSH1(1)+DIV, PUSH v+POP, DUP1+POP, and the
// DUP1+PUSH0+EQ -> DUP1+ISZERO rewrite. General "PUSH v + arithmetic op
// fused into one immediate-carrying instruction" fusions are not
// implemented: the data model has no variant for a fused-immediate exec
// entry, and adding one would mean embedding a 256-bit immediate in
// every Instruction. Per §9, correctness trumps optimization; the
// eliminations below are the ones provably safe without extending the
// instruction layout.
func (e *emitter) tryPeephole(op OpCode, pc int) bool {
	blockStart := e.curBlock.BeginBlockIndex
	last := len(e.instructions) - 1
	if last <= blockStart {
		return false
	}
	lastInst := e.instructions[last]

	switch op {
	case ADD:
		if lastInst.Kind == KindWord && wordEquals(e.code, lastInst, 0) {
			e.rollback(1)
			return true
		}
	case MUL, DIV:
		if lastInst.Kind == KindWord && wordEquals(e.code, lastInst, 1) {
			e.rollback(1)
			return true
		}
	case POP:
		if lastInst.Kind == KindWord {
			e.rollback(1)
			return true
		}
		if lastInst.Kind == KindExec && lastInst.Op == DUP1 {
			e.rollback(1)
			return true
		}
	case EQ:
		if lastInst.Kind == KindWord && lastInst.WordLen == 0 && last-1 > blockStart {
			prev := e.instructions[last-1]
			if prev.Kind == KindExec && prev.Op == DUP1 {
				e.rollback(1) // drop the PUSH0 only, DUP1 stays
				_ = e.appendObserve(pc, e.table[ISZERO], Exec(ISZERO))
				return true
			}
		}
	}
	return false
}

// wordEquals reports whether the immediate referenced by a KindWord
// instruction equals the small non-negative value v.
func wordEquals(code []byte, inst Instruction, v uint64) bool {
	return wordToUint256(code, inst).Eq(uint256.NewInt(v))
}

// wordToUint256 decodes the bytecode slice a KindWord instruction refers
// to as a 256-bit big-endian integer, the same width an interpreter
// would push onto the stack for it.
func wordToUint256(code []byte, inst Instruction) *uint256.Int {
	start := int(inst.WordStart)
	end := start + int(inst.WordLen)
	if end > len(code) {
		end = len(code)
	}
	if end < start {
		end = start
	}
	z := new(uint256.Int)
	z.SetBytes(code[start:end])
	return z
}
