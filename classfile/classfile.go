package classfile

import "strings"

type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	ConstantPool ConstantPool
	AccessFlags  AccessFlags
	ThisClass    uint16
	SuperClass   uint16
	Interfaces   []uint16
	Fields       []FieldInfo
	Methods      []MethodInfo
	Attributes   []AttributeInfo
}

func (cf *ClassFile) ClassName() string {
	return cf.ConstantPool.GetClassName(cf.ThisClass)
}

func (cf *ClassFile) SuperClassName() string {
	if cf.SuperClass == 0 {
		return ""
	}
	return cf.ConstantPool.GetClassName(cf.SuperClass)
}

func (cf *ClassFile) InterfaceNames() []string {
	names := make([]string, len(cf.Interfaces))
	for i, idx := range cf.Interfaces {
		names[i] = cf.ConstantPool.GetClassName(idx)
	}
	return names
}

func (cf *ClassFile) IsClass() bool {
	return !cf.AccessFlags.IsInterface() && !cf.AccessFlags.IsModule() && !cf.AccessFlags.IsEnum()
}

func (cf *ClassFile) IsInterface() bool {
	return cf.AccessFlags.IsInterface() && !cf.AccessFlags.IsAnnotation()
}

func (cf *ClassFile) IsAnnotation() bool {
	return cf.AccessFlags.IsAnnotation()
}

func (cf *ClassFile) IsEnum() bool {
	return cf.AccessFlags.IsEnum()
}

func (cf *ClassFile) IsModule() bool {
	return cf.AccessFlags.IsModule()
}

func (cf *ClassFile) GetField(name string) *FieldInfo {
	for i := range cf.Fields {
		if cf.Fields[i].Name(cf.ConstantPool) == name {
			return &cf.Fields[i]
		}
	}
	return nil
}

func (cf *ClassFile) GetMethod(name, descriptor string) *MethodInfo {
	for i := range cf.Methods {
		if cf.Methods[i].Name(cf.ConstantPool) == name {
			if descriptor == "" || cf.Methods[i].Descriptor(cf.ConstantPool) == descriptor {
				return &cf.Methods[i]
			}
		}
	}
	return nil
}

func (cf *ClassFile) GetAttribute(name string) *AttributeInfo {
	return findAttribute(cf.Attributes, cf.ConstantPool, name)
}

// Signature returns the raw generic class signature, or "" when the class
// carries none.
func (cf *ClassFile) Signature() string {
	if sig := cf.GetAttribute(AttrSignature).AsSignature(); sig != nil {
		return cf.ConstantPool.GetUtf8(sig.SignatureIndex)
	}
	return ""
}

func (cf *ClassFile) SourceFile() string {
	if sf := cf.GetAttribute(AttrSourceFile).AsSourceFile(); sf != nil {
		return cf.ConstantPool.GetUtf8(sf.SourceFileIndex)
	}
	return ""
}

// InnerClass is a resolved InnerClasses entry. OuterClass and InnerName are
// empty for local and anonymous classes.
type InnerClass struct {
	InnerClass  string
	OuterClass  string
	InnerName   string
	AccessFlags AccessFlags
}

func (cf *ClassFile) InnerClasses() []InnerClass {
	ic := cf.GetAttribute(AttrInnerClasses).AsInnerClasses()
	if ic == nil {
		return nil
	}
	out := make([]InnerClass, len(ic.Classes))
	for i, e := range ic.Classes {
		out[i] = InnerClass{
			InnerClass:  cf.ConstantPool.GetClassName(e.InnerClassInfoIndex),
			OuterClass:  cf.ConstantPool.GetClassName(e.OuterClassInfoIndex),
			InnerName:   cf.ConstantPool.GetUtf8(e.InnerNameIndex),
			AccessFlags: e.InnerClassAccessFlags,
		}
	}
	return out
}

// InnerClassEntry returns the InnerClasses entry describing the named class,
// if this class file records one.
func (cf *ClassFile) InnerClassEntry(internalName string) (InnerClass, bool) {
	for _, e := range cf.InnerClasses() {
		if e.InnerClass == internalName {
			return e, true
		}
	}
	return InnerClass{}, false
}

type member struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

func (m *member) Name(cp ConstantPool) string {
	return cp.GetUtf8(m.NameIndex)
}

func (m *member) Descriptor(cp ConstantPool) string {
	return cp.GetUtf8(m.DescriptorIndex)
}

func (m *member) GetAttribute(cp ConstantPool, name string) *AttributeInfo {
	return findAttribute(m.Attributes, cp, name)
}

func (m *member) Signature(cp ConstantPool) string {
	if sig := m.GetAttribute(cp, AttrSignature).AsSignature(); sig != nil {
		return cp.GetUtf8(sig.SignatureIndex)
	}
	return ""
}

func (m *member) IsDeprecated(cp ConstantPool) bool {
	return m.GetAttribute(cp, AttrDeprecated) != nil
}

type FieldInfo struct {
	member
}

// ConstantValueIndex returns the constant pool index of the field's
// ConstantValue attribute.
func (f *FieldInfo) ConstantValueIndex(cp ConstantPool) (uint16, bool) {
	if cv := f.GetAttribute(cp, AttrConstantValue).AsConstantValue(); cv != nil {
		return cv.ConstantValueIndex, true
	}
	return 0, false
}

func (f *FieldInfo) ParsedDescriptor(cp ConstantPool) (*FieldType, error) {
	return ParseFieldDescriptor(f.Descriptor(cp))
}

type MethodInfo struct {
	member
}

func (m *MethodInfo) IsConstructor(cp ConstantPool) bool {
	return m.Name(cp) == "<init>"
}

func (m *MethodInfo) IsStaticInitializer(cp ConstantPool) bool {
	return m.Name(cp) == "<clinit>"
}

func (m *MethodInfo) ParsedDescriptor(cp ConstantPool) (*MethodDescriptor, error) {
	return ParseMethodDescriptor(m.Descriptor(cp))
}

func (m *MethodInfo) GetCodeAttribute(cp ConstantPool) *CodeAttribute {
	return m.GetAttribute(cp, AttrCode).AsCode()
}

// ExceptionClassNames returns the internal names listed in the method's
// Exceptions attribute, in declaration order.
func (m *MethodInfo) ExceptionClassNames(cp ConstantPool) []string {
	ex := m.GetAttribute(cp, AttrExceptions).AsExceptions()
	if ex == nil {
		return nil
	}
	names := make([]string, len(ex.ExceptionIndexTable))
	for i, idx := range ex.ExceptionIndexTable {
		names[i] = cp.GetClassName(idx)
	}
	return names
}

// Param is one resolved MethodParameters entry. Name is empty for
// parameters compiled without a name.
type Param struct {
	Name        string
	AccessFlags AccessFlags
}

func (m *MethodInfo) MethodParameters(cp ConstantPool) ([]Param, bool) {
	mp := m.GetAttribute(cp, AttrMethodParameters).AsMethodParameters()
	if mp == nil {
		return nil, false
	}
	params := make([]Param, len(mp.Parameters))
	for i, p := range mp.Parameters {
		params[i] = Param{Name: cp.GetUtf8(p.NameIndex), AccessFlags: p.AccessFlags}
	}
	return params, true
}

// LocalVariableName returns the name of the local variable occupying slot at
// the start of the method body.
func (m *MethodInfo) LocalVariableName(cp ConstantPool, slot int) (string, bool) {
	code := m.GetCodeAttribute(cp)
	if code == nil {
		return "", false
	}
	lvt := findAttribute(code.Attributes, cp, AttrLocalVariableTable).AsLocalVariableTable()
	if lvt == nil {
		return "", false
	}
	for _, lv := range lvt.LocalVariableTable {
		if int(lv.Index) == slot && lv.StartPC == 0 {
			return cp.GetUtf8(lv.NameIndex), true
		}
	}
	return "", false
}

func InternalToSourceName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

func SourceToInternalName(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}
