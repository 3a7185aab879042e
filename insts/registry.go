package insts

// encKey identifies an R-type encoding by its (opcode, funct) pair. For
// non-R-type kinds, funct is always 0 and opcode alone selects the kind.
type encKey struct {
	opcode uint32
	funct  uint32
}

// registry maps an (opcode, funct) pair to the instruction kind it
// decodes to. Entries with opcode 0 and a nonzero funct are R-type
// (SPECIAL) instructions; every other entry is keyed on opcode alone,
// with funct left at 0.
var registry = map[encKey]Kind{
	{opcode: 0x00, funct: 0x20}: KindAdd,
	{opcode: 0x00, funct: 0x22}: KindSub,
	{opcode: 0x00, funct: 0x08}: KindJr,
	{opcode: 0x0F}:              KindLui,
	{opcode: 0x0D}:              KindOri,
	{opcode: 0x23}:              KindLw,
	{opcode: 0x2B}:              KindSw,
	{opcode: 0x04}:              KindBeq,
	{opcode: 0x03}:              KindJal,
	{opcode: 0x00, funct: 0x00}: KindNop,
}

// Decoder decodes raw 32-bit words into Instructions using the
// (opcode, funct) registry. An encoding with no registry entry decodes
// as a nop, the same as the all-zero word.
type Decoder struct{}

// NewDecoder creates a MIPS instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a raw 32-bit instruction word. Unknown encodings fall
// back to KindNop rather than failing, matching the all-zero
// instruction memory a program never reaches.
func (d *Decoder) Decode(word uint32) *Instruction {
	inst := &Instruction{Raw: word}

	opcode := inst.Opcode()
	key := encKey{opcode: opcode}
	if opcode == 0x00 {
		key.funct = inst.Funct()
	}

	kind, ok := registry[key]
	if !ok {
		kind = KindNop
	}
	inst.Kind = kind
	return inst
}
