package revshare

// Codec encodes and decodes one record type at the storage boundary.
type Codec[T any] interface {
	// Size is the exact encoded length.
	Size() int
	Encode(v *T) []byte
	Decode(data []byte) (*T, error)
}

type mainCodec struct{}

func (mainCodec) Size() int { return SizeMain }
func (mainCodec) Encode(v *Main) []byte { return SerializeMain(v) }
func (mainCodec) Decode(data []byte) (*Main, error) { return DeserializeMain(data) }

type pieceCodec struct{}

func (pieceCodec) Size() int { return SizePiece }
func (pieceCodec) Encode(v *Piece) []byte { return SerializePiece(v) }
func (pieceCodec) Decode(data []byte) (*Piece, error) { return DeserializePiece(data) }

type refCodec struct{}

func (refCodec) Size() int { return SizeRef }
func (refCodec) Encode(v *Ref) []byte { return SerializeRef(v) }
func (refCodec) Decode(data []byte) (*Ref, error) { return DeserializeRef(data) }

// Codecs for the three record types.
var (
	MainCodec  Codec[Main]  = mainCodec{}
	PieceCodec Codec[Piece] = pieceCodec{}
	RefCodec   Codec[Ref]   = refCodec{}
)
