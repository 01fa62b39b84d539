package classfile

type ConstantPoolEntry interface {
	Tag() ConstantTag
}

type ConstantUtf8Info struct {
	Value string
}

type ConstantIntegerInfo struct {
	Value int32
}

type ConstantFloatInfo struct {
	Value float32
}

type ConstantLongInfo struct {
	Value int64
}

type ConstantDoubleInfo struct {
	Value float64
}

type ConstantClassInfo struct {
	NameIndex uint16
}

type ConstantStringInfo struct {
	StringIndex uint16
}

// ConstantMemberrefInfo covers Fieldref, Methodref and InterfaceMethodref,
// which share a layout and differ only in their tag.
type ConstantMemberrefInfo struct {
	RefTag           ConstantTag
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

type ConstantNameAndTypeInfo struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

type ConstantMethodHandleInfo struct {
	ReferenceKind  uint8
	ReferenceIndex uint16
}

type ConstantMethodTypeInfo struct {
	DescriptorIndex uint16
}

// ConstantDynamicInfo covers Dynamic and InvokeDynamic.
type ConstantDynamicInfo struct {
	RefTag                   ConstantTag
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

// ConstantNamedInfo covers Module and Package.
type ConstantNamedInfo struct {
	RefTag    ConstantTag
	NameIndex uint16
}

func (c *ConstantUtf8Info) Tag() ConstantTag         { return ConstantUtf8 }
func (c *ConstantIntegerInfo) Tag() ConstantTag      { return ConstantInteger }
func (c *ConstantFloatInfo) Tag() ConstantTag        { return ConstantFloat }
func (c *ConstantLongInfo) Tag() ConstantTag         { return ConstantLong }
func (c *ConstantDoubleInfo) Tag() ConstantTag       { return ConstantDouble }
func (c *ConstantClassInfo) Tag() ConstantTag        { return ConstantClass }
func (c *ConstantStringInfo) Tag() ConstantTag       { return ConstantString }
func (c *ConstantMemberrefInfo) Tag() ConstantTag    { return c.RefTag }
func (c *ConstantNameAndTypeInfo) Tag() ConstantTag  { return ConstantNameAndType }
func (c *ConstantMethodHandleInfo) Tag() ConstantTag { return ConstantMethodHandle }
func (c *ConstantMethodTypeInfo) Tag() ConstantTag   { return ConstantMethodType }
func (c *ConstantDynamicInfo) Tag() ConstantTag      { return c.RefTag }
func (c *ConstantNamedInfo) Tag() ConstantTag        { return c.RefTag }

// ConstantPool is indexed from 1 as in the class file; entry i lives at
// cp[i-1]. The slot following a Long or Double is nil.
type ConstantPool []ConstantPoolEntry

func entryAt[T ConstantPoolEntry](cp ConstantPool, index uint16) (T, bool) {
	var zero T
	if index == 0 || int(index) > len(cp) {
		return zero, false
	}
	entry, ok := cp[index-1].(T)
	return entry, ok
}

// TagAt returns the tag of the entry at index, or 0 for an empty or
// out-of-range slot.
func (cp ConstantPool) TagAt(index uint16) ConstantTag {
	if index == 0 || int(index) > len(cp) || cp[index-1] == nil {
		return 0
	}
	return cp[index-1].Tag()
}

func (cp ConstantPool) GetUtf8(index uint16) string {
	if entry, ok := entryAt[*ConstantUtf8Info](cp, index); ok {
		return entry.Value
	}
	return ""
}

func (cp ConstantPool) GetClassName(index uint16) string {
	if entry, ok := entryAt[*ConstantClassInfo](cp, index); ok {
		return cp.GetUtf8(entry.NameIndex)
	}
	return ""
}

func (cp ConstantPool) GetNameAndType(index uint16) (name, descriptor string) {
	if entry, ok := entryAt[*ConstantNameAndTypeInfo](cp, index); ok {
		return cp.GetUtf8(entry.NameIndex), cp.GetUtf8(entry.DescriptorIndex)
	}
	return "", ""
}

func (cp ConstantPool) GetString(index uint16) (string, bool) {
	if entry, ok := entryAt[*ConstantStringInfo](cp, index); ok {
		return cp.GetUtf8(entry.StringIndex), true
	}
	return "", false
}

func (cp ConstantPool) GetInteger(index uint16) (int32, bool) {
	if entry, ok := entryAt[*ConstantIntegerInfo](cp, index); ok {
		return entry.Value, true
	}
	return 0, false
}

func (cp ConstantPool) GetLong(index uint16) (int64, bool) {
	if entry, ok := entryAt[*ConstantLongInfo](cp, index); ok {
		return entry.Value, true
	}
	return 0, false
}

func (cp ConstantPool) GetFloat(index uint16) (float32, bool) {
	if entry, ok := entryAt[*ConstantFloatInfo](cp, index); ok {
		return entry.Value, true
	}
	return 0, false
}

func (cp ConstantPool) GetDouble(index uint16) (float64, bool) {
	if entry, ok := entryAt[*ConstantDoubleInfo](cp, index); ok {
		return entry.Value, true
	}
	return 0, false
}

// GetMemberref resolves a Fieldref, Methodref or InterfaceMethodref entry.
func (cp ConstantPool) GetMemberref(index uint16) (className, name, descriptor string, ok bool) {
	entry, ok := entryAt[*ConstantMemberrefInfo](cp, index)
	if !ok {
		return "", "", "", false
	}
	className = cp.GetClassName(entry.ClassIndex)
	name, descriptor = cp.GetNameAndType(entry.NameAndTypeIndex)
	return className, name, descriptor, true
}

func (cp ConstantPool) GetFieldref(index uint16) (className, name, descriptor string) {
	if cp.TagAt(index) != ConstantFieldref {
		return "", "", ""
	}
	className, name, descriptor, _ = cp.GetMemberref(index)
	return
}

func (cp ConstantPool) GetMethodref(index uint16) (className, name, descriptor string) {
	if cp.TagAt(index) != ConstantMethodref {
		return "", "", ""
	}
	className, name, descriptor, _ = cp.GetMemberref(index)
	return
}

func (cp ConstantPool) GetInterfaceMethodref(index uint16) (className, name, descriptor string) {
	if cp.TagAt(index) != ConstantInterfaceMethodref {
		return "", "", ""
	}
	className, name, descriptor, _ = cp.GetMemberref(index)
	return
}
