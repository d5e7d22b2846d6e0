package stockroom

import "github.com/TheBitDrifter/mask"

// signature marks, for each declaration in decls, whether e holds that component.
func signature(e Entity, decls []*declaration) mask.Mask {
	var sig mask.Mask
	for _, d := range decls {
		if d.store.Has(e) {
			sig.Mark(d.bit)
		}
	}
	return sig
}

// maskFor builds the mask of the given components' row bits.
// Components must already be known to be declared in w.
func maskFor(w *World, components []Component) mask.Mask {
	var m mask.Mask
	for _, c := range components {
		d, err := w.declarationFor(c)
		if err != nil {
			continue
		}
		m.Mark(d.bit)
	}
	return m
}
