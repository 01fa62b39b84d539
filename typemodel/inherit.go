package typemodel

// HasMethod reports whether the type itself declares a method with m's
// name and parameter descriptors.
func (b *body) HasMethod(m *Method) (bool, error) {
	if m == nil {
		return false, nilArgument("HasMethod", "method")
	}
	methods, err := b.Methods()
	if err != nil {
		return false, err
	}
	for _, own := range methods {
		if own.IsSignatureEqualTo(m) {
			return true, nil
		}
	}
	return false, nil
}

// HasMethodInherited walks the superinterfaces, then the superclass chain,
// looking for a type that declares a method with m's signature. The walk
// is not memoized; it fails with ErrCycle if it meets a type already on
// the current path.
func (b *body) HasMethodInherited(m *Method) (bool, error) {
	if m == nil {
		return false, nilArgument("HasMethodInherited", "method")
	}
	return b.inherits(m, map[string]bool{b.d.internal: true})
}

func (b *body) HasMethodOverridden(m *Method) (bool, error) {
	if m == nil {
		return false, nilArgument("HasMethodOverridden", "method")
	}
	declares, err := b.HasMethod(m)
	if err != nil || !declares {
		return false, err
	}
	return b.HasMethodInherited(m)
}

func (b *body) inherits(m *Method, path map[string]bool) (bool, error) {
	ifaces, err := b.Interfaces()
	if err != nil {
		return false, err
	}
	for _, iface := range ifaces {
		found, err := iface.declaresOrInherits(m, path)
		if err != nil || found {
			return found, err
		}
	}
	super, err := b.Superclass()
	if err != nil || super == nil {
		return false, err
	}
	return super.declaresOrInherits(m, path)
}

func (b *body) declaresOrInherits(m *Method, path map[string]bool) (bool, error) {
	if path[b.d.internal] {
		return false, typeError("HasMethodInherited", b.d.external, ErrCycle)
	}
	path[b.d.internal] = true
	defer delete(path, b.d.internal)

	declares, err := b.HasMethod(m)
	if err != nil || declares {
		return declares, err
	}
	return b.inherits(m, path)
}
