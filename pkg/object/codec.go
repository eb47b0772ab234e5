package object

import "fmt"

// constructors maps each stored type tag to a fresh zero-valued variant.
var constructors = map[ObjectType]func() Object{
	TypeBlob:   func() Object { return &Blob{} },
	TypeTree:   func() Object { return &Tree{} },
	TypeCommit: func() Object { return &Commit{} },
	TypeTag:    func() Object { return &Tag{} },
}

// ParseType validates a type tag.
func ParseType(s string) (ObjectType, error) {
	t := ObjectType(s)
	if _, ok := constructors[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
	return t, nil
}

// New returns an empty object of the given type.
func New(t ObjectType) (Object, error) {
	ctor, ok := constructors[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, string(t))
	}
	return ctor(), nil
}

// Decode builds a typed object from its serialized content.
func Decode(t ObjectType, content []byte) (Object, error) {
	obj, err := New(t)
	if err != nil {
		return nil, err
	}
	if err := obj.Deserialize(content); err != nil {
		return nil, fmt.Errorf("decode %s: %w", t, err)
	}
	return obj, nil
}

// Encode serializes obj and returns its type tag alongside the content.
func Encode(obj Object) (ObjectType, []byte, error) {
	t := obj.Type()
	if _, ok := constructors[t]; !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownType, string(t))
	}
	data, err := obj.Serialize()
	if err != nil {
		return "", nil, fmt.Errorf("encode %s: %w", t, err)
	}
	return t, data, nil
}

// HashOf computes the hash obj would be stored under without touching any
// store.
func HashOf(obj Object) (Hash, error) {
	t, data, err := Encode(obj)
	if err != nil {
		return "", err
	}
	return HashObject(t, data), nil
}
