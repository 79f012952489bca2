// Package vm executes the bytecode produced by the compiler on a stack
// machine with call frames, closures, and a fixed-size global slot array.
package vm

import (
	"fmt"

	"monke/code"
	"monke/compiler"
	"monke/object"
)

const (
	StackSize  = 2048
	GlobalsSize = 65536
	MaxFrames  = 1024
)

// VM holds everything one execution of a compiled program needs: the
// constant pool it was compiled against, the data stack, the global slot
// array, and the frame stack tracking nested calls.
type VM struct {
	constants []object.Value

	stack   *DataStack
	globals []object.Value

	frames *FrameStack
}

// New creates a VM for bytecode with a fresh, zeroed globals array.
func New(bytecode *compiler.Bytecode) *VM {
	return NewWithGlobalsStore(bytecode, make([]object.Value, GlobalsSize))
}

// NewWithGlobalsStore creates a VM sharing globals with a prior run, used
// by the REPL so `let` bindings persist across lines.
func NewWithGlobalsStore(bytecode *compiler.Bytecode, globals []object.Value) *VM {
	mainFn := &object.CompiledFunction{Instructions: bytecode.Instructions}
	mainClosure := &object.Closure{Fn: mainFn}
	mainFrame := NewFrame(mainClosure, 0)

	frames := NewFrameStack(MaxFrames)
	_ = frames.Push(mainFrame)

	return &VM{
		constants: bytecode.Constants,
		stack:     NewDataStack(StackSize),
		globals:   globals,
		frames:    frames,
	}
}

// LastPoppedStackElem returns the value most recently discarded by a Pop
// instruction — the REPL's and `runc`'s observable result.
func (vm *VM) LastPoppedStackElem() object.Value {
	return vm.stack.LastPopped()
}

// Run executes the bytecode the VM was constructed with until the main
// frame's instructions are exhausted, or until an opcode records a
// RuntimeError.
func (vm *VM) Run() error {
	for vm.frames.Current().ip < len(vm.frames.Current().Instructions())-1 {
		frame := vm.frames.Current()
		frame.ip++
		ip := frame.ip
		ins := frame.Instructions()

		op := code.Opcode(ins[ip])

		switch op {
		case code.PConstant:
			constIndex := code.ReadUint16(ins[ip+1:])
			frame.ip += 2
			if err := vm.push(vm.constants[constIndex]); err != nil {
				return err
			}

		case code.PTrue:
			if err := vm.push(object.True); err != nil {
				return err
			}

		case code.PFalse:
			if err := vm.push(object.False); err != nil {
				return err
			}

		case code.PNull:
			if err := vm.push(object.NullValue); err != nil {
				return err
			}

		case code.Pop:
			vm.stack.Pop()

		case code.Add, code.Sub, code.Mul, code.Div:
			if err := vm.executeBinaryOperation(op); err != nil {
				return err
			}

		case code.Equal, code.NotEqual, code.GreaterThan:
			if err := vm.executeComparison(op); err != nil {
				return err
			}

		case code.Bang:
			if err := vm.executeBangOperator(); err != nil {
				return err
			}

		case code.Minus:
			if err := vm.executeMinusOperator(); err != nil {
				return err
			}

		case code.Jump:
			pos := int(code.ReadUint16(ins[ip+1:]))
			frame.ip = pos - 1

		case code.JumpNT:
			pos := int(code.ReadUint16(ins[ip+1:]))
			frame.ip += 2

			condition := vm.stack.Pop()
			if !isTruthy(condition) {
				frame.ip = pos - 1
			}

		case code.SetGlobal:
			globalIndex := code.ReadUint16(ins[ip+1:])
			frame.ip += 2
			vm.globals[globalIndex] = vm.stack.Pop()

		case code.GetGlobal:
			globalIndex := code.ReadUint16(ins[ip+1:])
			frame.ip += 2
			if err := vm.push(vm.globals[globalIndex]); err != nil {
				return err
			}

		case code.SetLocal:
			localIndex := code.ReadUint8(ins[ip+1:])
			frame.ip += 1
			vm.stack.slots[frame.basePointer+int(localIndex)] = vm.stack.Pop()

		case code.GetLocal:
			localIndex := code.ReadUint8(ins[ip+1:])
			frame.ip += 1
			if err := vm.push(vm.stack.slots[frame.basePointer+int(localIndex)]); err != nil {
				return err
			}

		case code.GetBuiltin:
			builtinIndex := code.ReadUint8(ins[ip+1:])
			frame.ip += 1
			definition := object.Builtins[builtinIndex]
			if err := vm.push(definition.Builtin); err != nil {
				return err
			}

		case code.GetFree:
			freeIndex := code.ReadUint8(ins[ip+1:])
			frame.ip += 1
			currentClosure := frame.cl
			if err := vm.push(currentClosure.Free[freeIndex]); err != nil {
				return err
			}

		case code.PArray:
			numElements := int(code.ReadUint16(ins[ip+1:]))
			frame.ip += 2

			array := vm.buildArray(vm.stack.sp-numElements, vm.stack.sp)
			vm.stack.sp = vm.stack.sp - numElements

			if err := vm.push(array); err != nil {
				return err
			}

		case code.PHash:
			numElements := int(code.ReadUint16(ins[ip+1:]))
			frame.ip += 2

			hash, err := vm.buildHash(vm.stack.sp-numElements, vm.stack.sp)
			if err != nil {
				return err
			}
			vm.stack.sp = vm.stack.sp - numElements

			if err := vm.push(hash); err != nil {
				return err
			}

		case code.Index:
			index := vm.stack.Pop()
			left := vm.stack.Pop()

			if err := vm.executeIndexExpression(left, index); err != nil {
				return err
			}

		case code.Call:
			numArgs := code.ReadUint8(ins[ip+1:])
			frame.ip += 1

			if err := vm.executeCall(int(numArgs)); err != nil {
				return err
			}

		case code.ReturnValue:
			returnValue := vm.stack.Pop()

			poppedFrame := vm.frames.Pop()
			vm.stack.sp = poppedFrame.basePointer - 1

			if err := vm.push(returnValue); err != nil {
				return err
			}

		case code.Return:
			poppedFrame := vm.frames.Pop()
			vm.stack.sp = poppedFrame.basePointer - 1

			if err := vm.push(object.NullValue); err != nil {
				return err
			}

		case code.Closure:
			constIndex := code.ReadUint16(ins[ip+1:])
			numFree := code.ReadUint8(ins[ip+3:])
			frame.ip += 3

			if err := vm.pushClosure(int(constIndex), int(numFree)); err != nil {
				return err
			}

		default:
			return RuntimeError{Message: fmt.Sprintf("unknown opcode %d", op)}
		}
	}

	return nil
}

func (vm *VM) push(v object.Value) error {
	return vm.stack.Push(v)
}

func (vm *VM) executeBinaryOperation(op code.Opcode) error {
	right := vm.stack.Pop()
	left := vm.stack.Pop()

	leftType := left.Type()
	rightType := right.Type()

	switch {
	case leftType == object.INTEGER_OBJ && rightType == object.INTEGER_OBJ:
		return vm.executeBinaryIntegerOperation(op, left, right)
	case op == code.Add && leftType == object.STRING_OBJ && rightType == object.STRING_OBJ:
		return vm.executeBinaryStringOperation(left, right)
	default:
		// The reference evaluator would raise a type-mismatch error here;
		// the VM is deliberately lenient and pushes Null instead.
		return vm.push(object.NullValue)
	}
}

func (vm *VM) executeBinaryIntegerOperation(op code.Opcode, left, right object.Value) error {
	leftValue := left.(*object.Integer).Value
	rightValue := right.(*object.Integer).Value

	var result int64

	switch op {
	case code.Add:
		result = leftValue + rightValue
	case code.Sub:
		result = leftValue - rightValue
	case code.Mul:
		result = leftValue * rightValue
	case code.Div:
		if rightValue == 0 {
			return vm.push(object.NullValue)
		}
		result = floorDiv(leftValue, rightValue)
	default:
		return RuntimeError{Message: fmt.Sprintf("unknown integer operator: %d", op)}
	}

	return vm.push(&object.Integer{Value: result})
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func (vm *VM) executeBinaryStringOperation(left, right object.Value) error {
	leftValue := left.(*object.String).Value
	rightValue := right.(*object.String).Value
	return vm.push(&object.String{Value: leftValue + rightValue})
}

func (vm *VM) executeComparison(op code.Opcode) error {
	right := vm.stack.Pop()
	left := vm.stack.Pop()

	if left.Type() == object.INTEGER_OBJ && right.Type() == object.INTEGER_OBJ {
		return vm.executeIntegerComparison(op, left, right)
	}

	if left.Type() == object.STRING_OBJ && right.Type() == object.STRING_OBJ {
		leftValue := left.(*object.String).Value
		rightValue := right.(*object.String).Value
		switch op {
		case code.Equal:
			return vm.push(object.NativeBoolToBoolean(leftValue == rightValue))
		case code.NotEqual:
			return vm.push(object.NativeBoolToBoolean(leftValue != rightValue))
		default:
			return vm.push(object.NullValue)
		}
	}

	switch op {
	case code.Equal:
		return vm.push(object.NativeBoolToBoolean(right == left))
	case code.NotEqual:
		return vm.push(object.NativeBoolToBoolean(right != left))
	default:
		// GreaterThan on a non-integer, non-string pair has no defined
		// ordering; lenient like the arithmetic opcodes.
		return vm.push(object.NullValue)
	}
}

func (vm *VM) executeIntegerComparison(op code.Opcode, left, right object.Value) error {
	leftValue := left.(*object.Integer).Value
	rightValue := right.(*object.Integer).Value

	switch op {
	case code.Equal:
		return vm.push(object.NativeBoolToBoolean(leftValue == rightValue))
	case code.NotEqual:
		return vm.push(object.NativeBoolToBoolean(leftValue != rightValue))
	case code.GreaterThan:
		return vm.push(object.NativeBoolToBoolean(leftValue > rightValue))
	default:
		return RuntimeError{Message: fmt.Sprintf("unknown operator: %d", op)}
	}
}

func (vm *VM) executeBangOperator() error {
	operand := vm.stack.Pop()

	switch operand {
	case object.True:
		return vm.push(object.False)
	case object.False:
		return vm.push(object.True)
	case object.NullValue:
		return vm.push(object.True)
	default:
		return vm.push(object.False)
	}
}

func (vm *VM) executeMinusOperator() error {
	operand := vm.stack.Pop()

	if operand.Type() != object.INTEGER_OBJ {
		return RuntimeError{Message: fmt.Sprintf("unsupported type for negation: %s", operand.Type())}
	}

	value := operand.(*object.Integer).Value
	return vm.push(&object.Integer{Value: -value})
}

func isTruthy(obj object.Value) bool {
	switch obj := obj.(type) {
	case *object.Boolean:
		return obj.Value
	case *object.Null:
		return false
	default:
		return true
	}
}

func (vm *VM) buildArray(startIndex, endIndex int) object.Value {
	elements := make([]object.Value, endIndex-startIndex)
	for i := startIndex; i < endIndex; i++ {
		elements[i-startIndex] = vm.stack.slots[i]
	}
	return &object.Array{Elements: elements}
}

func (vm *VM) buildHash(startIndex, endIndex int) (object.Value, error) {
	hash := object.NewHash()

	for i := startIndex; i < endIndex; i += 2 {
		key := vm.stack.slots[i]
		value := vm.stack.slots[i+1]

		hashKey, ok := key.(object.Hashable)
		if !ok {
			return nil, RuntimeError{Message: fmt.Sprintf("unusable as hash key: %s", key.Type())}
		}

		hash.Set(key, hashKey.HashKey(), value)
	}

	return hash, nil
}

func (vm *VM) executeIndexExpression(left, index object.Value) error {
	switch {
	case left.Type() == object.ARRAY_OBJ && index.Type() == object.INTEGER_OBJ:
		return vm.executeArrayIndex(left, index)
	case left.Type() == object.HASH_OBJ:
		return vm.executeHashIndex(left, index)
	default:
		return RuntimeError{Message: fmt.Sprintf("index operator not supported: %s", left.Type())}
	}
}

func (vm *VM) executeArrayIndex(array, index object.Value) error {
	arrayObject := array.(*object.Array)
	idx := index.(*object.Integer).Value
	length := int64(len(arrayObject.Elements))

	if idx < 0 {
		idx += length
	}

	if idx < 0 || idx >= length {
		return vm.push(object.NullValue)
	}

	return vm.push(arrayObject.Elements[idx])
}

func (vm *VM) executeHashIndex(hash, index object.Value) error {
	hashObject := hash.(*object.Hash)

	key, ok := index.(object.Hashable)
	if !ok {
		return RuntimeError{Message: fmt.Sprintf("unusable as hash key: %s", index.Type())}
	}

	pair, ok := hashObject.Pairs[key.HashKey()]
	if !ok {
		return vm.push(object.NullValue)
	}

	return vm.push(pair.Value)
}

func (vm *VM) executeCall(numArgs int) error {
	callee := vm.stack.slots[vm.stack.sp-1-numArgs]

	switch callee := callee.(type) {
	case *object.Closure:
		return vm.callClosure(callee, numArgs)
	case *object.Builtin:
		return vm.callBuiltin(callee, numArgs)
	default:
		return RuntimeError{Message: "calling non-function and non-built-in"}
	}
}

func (vm *VM) callClosure(cl *object.Closure, numArgs int) error {
	if numArgs != cl.Fn.NumParameters {
		return RuntimeError{Message: fmt.Sprintf(
			"wrong number of arguments: want=%d, got=%d", cl.Fn.NumParameters, numArgs)}
	}

	frame := NewFrame(cl, vm.stack.sp-numArgs)
	if err := vm.frames.Push(frame); err != nil {
		return err
	}
	vm.stack.sp = frame.basePointer + cl.Fn.NumLocals

	return nil
}

func (vm *VM) callBuiltin(builtin *object.Builtin, numArgs int) error {
	args := vm.stack.slots[vm.stack.sp-numArgs : vm.stack.sp]

	result := builtin.Fn(args...)
	vm.stack.sp = vm.stack.sp - numArgs - 1

	if result != nil {
		return vm.push(result)
	}
	return vm.push(object.NullValue)
}

func (vm *VM) pushClosure(constIndex, numFree int) error {
	constant := vm.constants[constIndex]
	function, ok := constant.(*object.CompiledFunction)
	if !ok {
		return RuntimeError{Message: fmt.Sprintf("not a function: %+v", constant)}
	}

	free := make([]object.Value, numFree)
	for i := 0; i < numFree; i++ {
		free[i] = vm.stack.slots[vm.stack.sp-numFree+i]
	}
	vm.stack.sp = vm.stack.sp - numFree

	closure := &object.Closure{Fn: function, Free: free}
	return vm.push(closure)
}
