// FILE: lixenwraith/flatlog/record.go
package flatlog

import (
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/lixenwraith/flatlog/formatter"
	"github.com/lixenwraith/flatlog/sanitizer"
)

// Field is one key/value pair appended to a line as " | key = value"
type Field = formatter.Field

// F builds a string field
func F(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Any builds a field from an arbitrary value.
// Composite values are dumped with sorted map keys and no pointer addresses.
func Any(key string, v any) Field {
	return Field{Key: key, Value: sanitizer.Stringify(v)}
}

// Pairs builds fields from alternating keys and values.
// A trailing key without a value gets an empty value.
func Pairs(kv ...string) []Field {
	fields := make([]Field, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		f := Field{Key: kv[i]}
		if i+1 < len(kv) {
			f.Value = kv[i+1]
		}
		fields = append(fields, f)
	}
	return fields
}

// Origin identifies the call site of a record
type Origin struct {
	File     string
	Function string
	Line     int
}

// String renders file:function:line
func (o Origin) String() string {
	return o.File + ":" + o.Function + ":" + strconv.Itoa(o.Line)
}

// Caller captures the origin skip frames above the function calling Caller.
// Caller(0) is the caller of Caller itself.
func Caller(skip int) Origin {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Origin{File: "(unknown)", Function: "(unknown)"}
	}
	var fn string
	if f := runtime.FuncForPC(pc); f != nil {
		fn = f.Name()
	}
	return Origin{
		File:     filepath.Base(file),
		Function: shortFunctionName(fn),
		Line:     line,
	}
}

// Record is a single log entry as seen by the sink before formatting
type Record struct {
	Text   string
	Level  Level
	Fields []Field
	Origin Origin
	Time   time.Time
}
