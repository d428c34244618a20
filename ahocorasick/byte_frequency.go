package ahocorasick

// byteFrequencies ranks candidate bytes by how rarely they occur,
// preferring rarer bytes as prefilter skip anchors (see prefilter.go's
// rareBytesBuilder). cmd/freq-gen's corpus sampler — the tool this
// table's shape is grounded on — needs a live file tree to run against;
// with none available here, these ranks are hand-tuned for prose mixed
// with source-code snippets, the shape of text the literal-fallback
// automaton scans (§4.3). A wrong rank only costs prefilter efficiency:
// the NFA walk is what actually decides a match, so this table can
// never make IterOverlappingByte miss or misreport a pattern.
var byteFrequencies = [256]byte{
	0,   // '\x00'
	0,   // '\x01'
	0,   // '\x02'
	0,   // '\x03'
	0,   // '\x04'
	0,   // '\x05'
	0,   // '\x06'
	0,   // '\x07'
	0,   // '\x08'
	60,  // '\t'
	140, // '\n'
	10,  // '\x0b'
	10,  // '\x0c'
	60,  // '\r'
	0,   // '\x0e'
	0,   // '\x0f'
	0,   // '\x10'
	0,   // '\x11'
	0,   // '\x12'
	0,   // '\x13'
	0,   // '\x14'
	0,   // '\x15'
	0,   // '\x16'
	0,   // '\x17'
	0,   // '\x18'
	0,   // '\x19'
	0,   // '\x1a'
	0,   // '\x1b'
	0,   // '\x1c'
	0,   // '\x1d'
	0,   // '\x1e'
	0,   // '\x1f'
	160, // ' '
	40,  // '!'
	80,  // '"'
	20,  // '#'
	20,  // '$'
	20,  // '%'
	20,  // '&'
	80,  // '\''
	80,  // '('
	80,  // ')'
	20,  // '*'
	80,  // '+'
	80,  // ','
	80,  // '-'
	80,  // '.'
	80,  // '/'
	120, // '0'
	120, // '1'
	120, // '2'
	120, // '3'
	120, // '4'
	120, // '5'
	120, // '6'
	120, // '7'
	120, // '8'
	120, // '9'
	80,  // ':'
	80,  // ';'
	40,  // '<'
	80,  // '='
	40,  // '>'
	40,  // '?'
	20,  // '@'
	100, // 'A'
	100, // 'B'
	100, // 'C'
	100, // 'D'
	100, // 'E'
	100, // 'F'
	100, // 'G'
	100, // 'H'
	100, // 'I'
	100, // 'J'
	100, // 'K'
	100, // 'L'
	100, // 'M'
	100, // 'N'
	100, // 'O'
	100, // 'P'
	100, // 'Q'
	100, // 'R'
	100, // 'S'
	100, // 'T'
	100, // 'U'
	100, // 'V'
	100, // 'W'
	100, // 'X'
	100, // 'Y'
	100, // 'Z'
	40,  // '['
	80,  // '\\'
	40,  // ']'
	20,  // '^'
	80,  // '_'
	20,  // '`'
	200, // 'a'
	200, // 'b'
	200, // 'c'
	200, // 'd'
	200, // 'e'
	200, // 'f'
	200, // 'g'
	200, // 'h'
	200, // 'i'
	200, // 'j'
	200, // 'k'
	200, // 'l'
	200, // 'm'
	200, // 'n'
	200, // 'o'
	200, // 'p'
	200, // 'q'
	200, // 'r'
	200, // 's'
	200, // 't'
	200, // 'u'
	200, // 'v'
	200, // 'w'
	200, // 'x'
	200, // 'y'
	200, // 'z'
	40,  // '{'
	20,  // '|'
	40,  // '}'
	20,  // '~'
	10,  // '\x7f'
	0,   // '\x80'
	0,   // '\x81'
	0,   // '\x82'
	0,   // '\x83'
	0,   // '\x84'
	0,   // '\x85'
	0,   // '\x86'
	0,   // '\x87'
	0,   // '\x88'
	0,   // '\x89'
	0,   // '\x8a'
	0,   // '\x8b'
	0,   // '\x8c'
	0,   // '\x8d'
	0,   // '\x8e'
	0,   // '\x8f'
	0,   // '\x90'
	0,   // '\x91'
	0,   // '\x92'
	0,   // '\x93'
	0,   // '\x94'
	0,   // '\x95'
	0,   // '\x96'
	0,   // '\x97'
	0,   // '\x98'
	0,   // '\x99'
	0,   // '\x9a'
	0,   // '\x9b'
	0,   // '\x9c'
	0,   // '\x9d'
	0,   // '\x9e'
	0,   // '\x9f'
	0,   // '\xa0'
	0,   // '\xa1'
	0,   // '\xa2'
	0,   // '\xa3'
	0,   // '\xa4'
	0,   // '\xa5'
	0,   // '\xa6'
	0,   // '\xa7'
	0,   // '\xa8'
	0,   // '\xa9'
	0,   // '\xaa'
	0,   // '\xab'
	0,   // '\xac'
	0,   // '\xad'
	0,   // '\xae'
	0,   // '\xaf'
	0,   // '\xb0'
	0,   // '\xb1'
	0,   // '\xb2'
	0,   // '\xb3'
	0,   // '\xb4'
	0,   // '\xb5'
	0,   // '\xb6'
	0,   // '\xb7'
	0,   // '\xb8'
	0,   // '\xb9'
	0,   // '\xba'
	0,   // '\xbb'
	0,   // '\xbc'
	0,   // '\xbd'
	0,   // '\xbe'
	0,   // '\xbf'
	0,   // '\xc0'
	0,   // '\xc1'
	0,   // '\xc2'
	0,   // '\xc3'
	0,   // '\xc4'
	0,   // '\xc5'
	0,   // '\xc6'
	0,   // '\xc7'
	0,   // '\xc8'
	0,   // '\xc9'
	0,   // '\xca'
	0,   // '\xcb'
	0,   // '\xcc'
	0,   // '\xcd'
	0,   // '\xce'
	0,   // '\xcf'
	0,   // '\xd0'
	0,   // '\xd1'
	0,   // '\xd2'
	0,   // '\xd3'
	0,   // '\xd4'
	0,   // '\xd5'
	0,   // '\xd6'
	0,   // '\xd7'
	0,   // '\xd8'
	0,   // '\xd9'
	0,   // '\xda'
	0,   // '\xdb'
	0,   // '\xdc'
	0,   // '\xdd'
	0,   // '\xde'
	0,   // '\xdf'
	0,   // '\xe0'
	0,   // '\xe1'
	0,   // '\xe2'
	0,   // '\xe3'
	0,   // '\xe4'
	0,   // '\xe5'
	0,   // '\xe6'
	0,   // '\xe7'
	0,   // '\xe8'
	0,   // '\xe9'
	0,   // '\xea'
	0,   // '\xeb'
	0,   // '\xec'
	0,   // '\xed'
	0,   // '\xee'
	0,   // '\xef'
	0,   // '\xf0'
	0,   // '\xf1'
	0,   // '\xf2'
	0,   // '\xf3'
	0,   // '\xf4'
	0,   // '\xf5'
	0,   // '\xf6'
	0,   // '\xf7'
	0,   // '\xf8'
	0,   // '\xf9'
	0,   // '\xfa'
	0,   // '\xfb'
	0,   // '\xfc'
	0,   // '\xfd'
	0,   // '\xfe'
	0,   // '\xff'
}
