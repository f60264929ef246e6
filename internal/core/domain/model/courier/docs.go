// Package courier contains the Courier aggregate and its value objects: the
// rotation status machine, the shift window, the weekly schedule, and the
// bag type.
package courier
