package vm

import (
	"time"

	"loxvm/internal/bytecode"
)

// defineNatives installs the VM's built-in native functions as globals
// before any user code runs: currently just clock, reporting seconds
// elapsed since this VM was created.
func (vm *VM) defineNatives() {
	vm.defineNative("clock", func(args []bytecode.Value) (bytecode.Value, error) {
		return bytecode.Number(time.Since(vm.start).Seconds()), nil
	})
}

func (vm *VM) defineNative(name string, fn bytecode.NativeGoFunc) {
	vm.globals[name] = bytecode.FromObject(&bytecode.NativeFunction{Name: name, Fn: fn})
}
