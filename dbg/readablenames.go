package dbg

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
)

// This converts pointers into random readable names, so that log lines of
// concurrent transforms can be told apart. It leaks one string per object it
// has named, which is fine as long as it is only called when logging is on.

var (
	mu   sync.Mutex
	memo = make(map[interface{}]string)
)

func init() {
	// Names are handed out in order of demand, so make them nondeterministic
	// to remind the reader that a name does not identify the same object
	// between runs.
	petname.NonDeterministicMode()
}

// Name returns the readable name of a pointer, assigning one on first use.
func Name(obj interface{}) string {
	if obj == nil {
		return "Ø"
	}
	if v := reflect.ValueOf(obj); v.Kind() == reflect.Ptr && v.IsNil() {
		return "Ø"
	}

	mu.Lock()
	defer mu.Unlock()
	if r, ok := memo[obj]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", strings.Title(petname.Adjective()), strings.Title(petname.Name()))
	memo[obj] = r
	return r
}
