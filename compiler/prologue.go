package compiler

// prologue is the fixed preamble emitted ahead of every compiled
// program: external declarations, the value-cell type, the runtime
// stack and its growth/push/pop/peek helpers, and the 26 variable
// globals (spec.md §4.3.1, §4.3.2).
//
// The runtime stack is an array of %union.FalseValue cells, each wide
// enough to hold any one of an i32, a pointer to a variable cell, or a
// quotation's function pointer. Each of the four "views" a FALSE value
// can be read or written as (int, ref, quote, or raw/any) gets its own
// push/pop/peek helper that bitcasts the storage cell to that view,
// rather than the generator inlining the bitcast at every call site.
const prologue = `; Code generated by falsec. DO NOT EDIT.

declare i8* @malloc(i64)
declare i8* @realloc(i8*, i64)
declare void @free(i8*)
declare i32 @putchar(i32)
declare i32 @getchar()
declare i32 @printf(i8*, ...)

%union.FalseValue = type { [8 x i8] }

@.num = private unnamed_addr constant [3 x i8] c"%d\00"
@.fmt = private unnamed_addr constant [3 x i8] c"%s\00"

@stack = global %union.FalseValue* null
@stack_size = global i64 0
@stack_capacity = global i64 0

@var_a = global %union.FalseValue zeroinitializer
@var_b = global %union.FalseValue zeroinitializer
@var_c = global %union.FalseValue zeroinitializer
@var_d = global %union.FalseValue zeroinitializer
@var_e = global %union.FalseValue zeroinitializer
@var_f = global %union.FalseValue zeroinitializer
@var_g = global %union.FalseValue zeroinitializer
@var_h = global %union.FalseValue zeroinitializer
@var_i = global %union.FalseValue zeroinitializer
@var_j = global %union.FalseValue zeroinitializer
@var_k = global %union.FalseValue zeroinitializer
@var_l = global %union.FalseValue zeroinitializer
@var_m = global %union.FalseValue zeroinitializer
@var_n = global %union.FalseValue zeroinitializer
@var_o = global %union.FalseValue zeroinitializer
@var_p = global %union.FalseValue zeroinitializer
@var_q = global %union.FalseValue zeroinitializer
@var_r = global %union.FalseValue zeroinitializer
@var_s = global %union.FalseValue zeroinitializer
@var_t = global %union.FalseValue zeroinitializer
@var_u = global %union.FalseValue zeroinitializer
@var_v = global %union.FalseValue zeroinitializer
@var_w = global %union.FalseValue zeroinitializer
@var_x = global %union.FalseValue zeroinitializer
@var_y = global %union.FalseValue zeroinitializer
@var_z = global %union.FalseValue zeroinitializer

define void @stack_init() {
entry:
  %bytes = mul i64 8, 16
  %mem = call i8* @malloc(i64 %bytes)
  %typed = bitcast i8* %mem to %union.FalseValue*
  store %union.FalseValue* %typed, %union.FalseValue** @stack
  store i64 0, i64* @stack_size
  store i64 16, i64* @stack_capacity
  ret void
}

define void @stack_free() {
entry:
  %mem = load %union.FalseValue*, %union.FalseValue** @stack
  %raw = bitcast %union.FalseValue* %mem to i8*
  call void @free(i8* %raw)
  ret void
}

; stack_grow_if_full doubles the backing store whenever the next push
; would overflow it.
define void @stack_grow_if_full() {
entry:
  %size = load i64, i64* @stack_size
  %cap = load i64, i64* @stack_capacity
  %full = icmp sge i64 %size, %cap
  br i1 %full, label %grow, label %done

grow:
  %oldmem = load %union.FalseValue*, %union.FalseValue** @stack
  %oldraw = bitcast %union.FalseValue* %oldmem to i8*
  %newcap = mul i64 %cap, 2
  %newbytes = mul i64 %newcap, 8
  %newraw = call i8* @realloc(i8* %oldraw, i64 %newbytes)
  %newmem = bitcast i8* %newraw to %union.FalseValue*
  store %union.FalseValue* %newmem, %union.FalseValue** @stack
  store i64 %newcap, i64* @stack_capacity
  br label %done

done:
  ret void
}

define void @push_any(%union.FalseValue %v) {
entry:
  call void @stack_grow_if_full()
  %size = load i64, i64* @stack_size
  %mem = load %union.FalseValue*, %union.FalseValue** @stack
  %slot = getelementptr %union.FalseValue, %union.FalseValue* %mem, i64 %size
  store %union.FalseValue %v, %union.FalseValue* %slot
  %next = add i64 %size, 1
  store i64 %next, i64* @stack_size
  ret void
}

define %union.FalseValue @pop_any() {
entry:
  %size = load i64, i64* @stack_size
  %top = sub i64 %size, 1
  %mem = load %union.FalseValue*, %union.FalseValue** @stack
  %slot = getelementptr %union.FalseValue, %union.FalseValue* %mem, i64 %top
  %v = load %union.FalseValue, %union.FalseValue* %slot
  store i64 %top, i64* @stack_size
  ret %union.FalseValue %v
}

; pop_any_discard pops and ignores a value, for '%' Discard.
define void @pop_any_discard() {
entry:
  %v = call %union.FalseValue @pop_any()
  ret void
}

define %union.FalseValue @peek_any(i32 %depth) {
entry:
  %size = load i64, i64* @stack_size
  %d64 = sext i32 %depth to i64
  %idx = sub i64 %size, 1
  %real = sub i64 %idx, %d64
  %mem = load %union.FalseValue*, %union.FalseValue** @stack
  %slot = getelementptr %union.FalseValue, %union.FalseValue* %mem, i64 %real
  %v = load %union.FalseValue, %union.FalseValue* %slot
  ret %union.FalseValue %v
}

define void @push_int(i32 %v) {
entry:
  %slot = alloca %union.FalseValue
  %view = bitcast %union.FalseValue* %slot to i32*
  store i32 %v, i32* %view
  %packed = load %union.FalseValue, %union.FalseValue* %slot
  call void @push_any(%union.FalseValue %packed)
  ret void
}

define i32 @pop_int() {
entry:
  %packed = call %union.FalseValue @pop_any()
  %slot = alloca %union.FalseValue
  store %union.FalseValue %packed, %union.FalseValue* %slot
  %view = bitcast %union.FalseValue* %slot to i32*
  %v = load i32, i32* %view
  ret i32 %v
}

define i32 @peek_int(i32 %depth) {
entry:
  %packed = call %union.FalseValue @peek_any(i32 %depth)
  %slot = alloca %union.FalseValue
  store %union.FalseValue %packed, %union.FalseValue* %slot
  %view = bitcast %union.FalseValue* %slot to i32*
  %v = load i32, i32* %view
  ret i32 %v
}

define void @push_ref(%union.FalseValue* %v) {
entry:
  %slot = alloca %union.FalseValue
  %view = bitcast %union.FalseValue* %slot to %union.FalseValue**
  store %union.FalseValue* %v, %union.FalseValue** %view
  %packed = load %union.FalseValue, %union.FalseValue* %slot
  call void @push_any(%union.FalseValue %packed)
  ret void
}

define %union.FalseValue* @pop_ref() {
entry:
  %packed = call %union.FalseValue @pop_any()
  %slot = alloca %union.FalseValue
  store %union.FalseValue %packed, %union.FalseValue* %slot
  %view = bitcast %union.FalseValue* %slot to %union.FalseValue**
  %v = load %union.FalseValue*, %union.FalseValue** %view
  ret %union.FalseValue* %v
}

define %union.FalseValue* @peek_ref(i32 %depth) {
entry:
  %packed = call %union.FalseValue @peek_any(i32 %depth)
  %slot = alloca %union.FalseValue
  store %union.FalseValue %packed, %union.FalseValue* %slot
  %view = bitcast %union.FalseValue* %slot to %union.FalseValue**
  %v = load %union.FalseValue*, %union.FalseValue** %view
  ret %union.FalseValue* %v
}

define void @push_quote(void()* %v) {
entry:
  %slot = alloca %union.FalseValue
  %view = bitcast %union.FalseValue* %slot to void()**
  store void()* %v, void()** %view
  %packed = load %union.FalseValue, %union.FalseValue* %slot
  call void @push_any(%union.FalseValue %packed)
  ret void
}

define void()* @pop_quote() {
entry:
  %packed = call %union.FalseValue @pop_any()
  %slot = alloca %union.FalseValue
  store %union.FalseValue %packed, %union.FalseValue* %slot
  %view = bitcast %union.FalseValue* %slot to void()**
  %v = load void()*, void()** %view
  ret void()* %v
}

define void()* @peek_quote(i32 %depth) {
entry:
  %packed = call %union.FalseValue @peek_any(i32 %depth)
  %slot = alloca %union.FalseValue
  store %union.FalseValue %packed, %union.FalseValue* %slot
  %view = bitcast %union.FalseValue* %slot to void()**
  %v = load void()*, void()** %view
  ret void()* %v
}

`
