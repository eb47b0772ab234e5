package object

// ObjectType identifies the kind of object stored.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeTree   ObjectType = "tree"
	TypeCommit ObjectType = "commit"
	TypeTag    ObjectType = "tag"
)

// Object is implemented by every stored variant. Deserialize either fully
// replaces the receiver's contents or leaves it untouched and returns an error.
type Object interface {
	Type() ObjectType
	Serialize() ([]byte, error)
	Deserialize(data []byte) error
}

// Blob holds raw file data.
type Blob struct {
	Data []byte
}

func (b *Blob) Type() ObjectType { return TypeBlob }

// Serialize returns a copy of the blob bytes.
func (b *Blob) Serialize() ([]byte, error) {
	out := make([]byte, len(b.Data))
	copy(out, b.Data)
	return out, nil
}

func (b *Blob) Deserialize(data []byte) error {
	out := make([]byte, len(data))
	copy(out, data)
	b.Data = out
	return nil
}

// Tree holds directory entries. Entry order in memory is free; Serialize
// always emits canonical order.
type Tree struct {
	Entries []TreeEntry
}

func (t *Tree) Type() ObjectType { return TypeTree }

func (t *Tree) Serialize() ([]byte, error) {
	return SerializeTree(t.Entries)
}

func (t *Tree) Deserialize(data []byte) error {
	entries, err := ParseTree(data)
	if err != nil {
		return err
	}
	t.Entries = entries
	return nil
}

// Commit is a header mapping plus message in KVLM form.
type Commit struct {
	Kvlm Kvlm
}

func (c *Commit) Type() ObjectType { return TypeCommit }

func (c *Commit) Serialize() ([]byte, error) {
	return c.Kvlm.Serialize(), nil
}

func (c *Commit) Deserialize(data []byte) error {
	kv, err := ParseKvlm(data)
	if err != nil {
		return err
	}
	c.Kvlm = *kv
	return nil
}

// TreeHash returns the value of the "tree" header.
func (c *Commit) TreeHash() Hash { return Hash(c.Kvlm.Get("tree")) }

// Parents returns every "parent" header in order.
func (c *Commit) Parents() []Hash {
	vals := c.Kvlm.GetAll("parent")
	out := make([]Hash, len(vals))
	for i, v := range vals {
		out[i] = Hash(v)
	}
	return out
}

func (c *Commit) Author() string    { return c.Kvlm.Get("author") }
func (c *Commit) Committer() string { return c.Kvlm.Get("committer") }
func (c *Commit) Message() string   { return c.Kvlm.Message }

// Tag is an annotated tag. It shares the commit wire shape.
type Tag struct {
	Kvlm Kvlm
}

func (t *Tag) Type() ObjectType { return TypeTag }

func (t *Tag) Serialize() ([]byte, error) {
	return t.Kvlm.Serialize(), nil
}

func (t *Tag) Deserialize(data []byte) error {
	kv, err := ParseKvlm(data)
	if err != nil {
		return err
	}
	t.Kvlm = *kv
	return nil
}

// Target returns the hash named by the "object" header.
func (t *Tag) Target() Hash { return Hash(t.Kvlm.Get("object")) }

// TargetType returns the "type" header of the tagged object.
func (t *Tag) TargetType() ObjectType { return ObjectType(t.Kvlm.Get("type")) }

func (t *Tag) Name() string { return t.Kvlm.Get("tag") }
