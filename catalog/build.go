package catalog

import "github.com/nholm/graphquest/types"

// kindBuilder assembles one KindDef. Registration files chain its methods
// and finish with c.add(b.def) via the done helper on each register call.
type kindBuilder struct {
	def types.KindDef
}

func kind(id, label string, cat types.Category, owners types.OwnerSet) *kindBuilder {
	return &kindBuilder{def: types.KindDef{
		Kind:     id,
		Label:    label,
		Category: cat,
		Owners:   owners,
	}}
}

func (b *kindBuilder) feature(f string) *kindBuilder {
	b.def.Feature = f
	return b
}

// execIn declares the standard "in" execution input.
func (b *kindBuilder) execIn() *kindBuilder {
	b.def.Inputs = append(b.def.Inputs, types.PortDef{Name: "in", Channel: types.ChannelExec})
	return b
}

// execOut declares execution outputs in order. The first one is the
// primary output.
func (b *kindBuilder) execOut(names ...string) *kindBuilder {
	for _, n := range names {
		b.def.Outputs = append(b.def.Outputs, types.PortDef{Name: n, Channel: types.ChannelExec})
	}
	return b
}

// dataIn declares a data input port. def is the literal used when the port
// is unconnected and the node sets no property override; nil means no default.
func (b *kindBuilder) dataIn(name string, k types.ValueKind, def any) *kindBuilder {
	b.def.Inputs = append(b.def.Inputs, types.PortDef{
		Name: name, Channel: types.ChannelData, Value: k, Default: def,
	})
	return b
}

func (b *kindBuilder) dataOut(name string, k types.ValueKind) *kindBuilder {
	b.def.Outputs = append(b.def.Outputs, types.PortDef{
		Name: name, Channel: types.ChannelData, Value: k,
	})
	return b
}

func (b *kindBuilder) prop(name string, k types.ValueKind, def any) *kindBuilder {
	b.def.Props = append(b.def.Props, types.PropDef{Name: name, Value: k, Default: def})
	return b
}

// reqProp declares a property the validator requires a non-blank value for.
func (b *kindBuilder) reqProp(name string, k types.ValueKind) *kindBuilder {
	b.def.Props = append(b.def.Props, types.PropDef{Name: name, Value: k, Required: true})
	return b
}

// enumProp declares a string property restricted to the given options.
func (b *kindBuilder) enumProp(name, def string, options ...string) *kindBuilder {
	b.def.Props = append(b.def.Props, types.PropDef{
		Name: name, Value: types.KindString, Default: def, Options: options,
	})
	return b
}

// entityProp declares a property selecting an entity of the given category.
// Entity references always require a value.
func (b *kindBuilder) entityProp(name, category string) *kindBuilder {
	b.def.Props = append(b.def.Props, types.PropDef{
		Name: name, Value: types.KindString, EntityRef: category,
	})
	return b
}
