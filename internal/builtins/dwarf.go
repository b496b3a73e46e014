// Copyright 2026 The Dwgrep Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package builtins

import (
	"dwgrep.org/go/dwgrep/errors"
	"dwgrep.org/go/internal/core/constant"
	"dwgrep.org/go/internal/core/graph"
	"dwgrep.org/go/internal/core/overload"
	"dwgrep.org/go/internal/core/value"
)

func parentDIE(v *value.DIE) (value.Value, error) {
	p, err := v.Dwarf().Parent(v.Offset())
	if err != nil || p == graph.NoOffset {
		return nil, err
	}
	return value.NewDIE(v.Dwarf(), p), nil
}

func childDIE(v *value.DIE) (value.Producer, error) {
	dw := v.Dwarf()
	kids, err := graph.Children(dw.Graph, v.Offset())
	if err != nil {
		return nil, errors.Wrapf(err, "child", "cannot list children of %v", v.Offset())
	}
	vs := make([]value.Value, len(kids))
	for i, k := range kids {
		vs[i] = value.NewDIE(dw, k)
	}
	return value.ProduceSlice(vs...), nil
}

func rootDIE(v *value.DIE) (bool, error) {
	return v.Dwarf().IsRoot(v.Offset())
}

func offsetDIE(v *value.DIE) (value.Value, error) {
	return value.NewCst(constant.NewUint64(uint64(v.Offset()), constant.Hex)), nil
}

func tagDIE(v *value.DIE) (value.Value, error) {
	tag, err := v.Dwarf().Graph.Tag(v.Offset())
	if err != nil {
		return nil, errors.Wrapf(err, "label", "cannot read tag of %v", v.Offset())
	}
	return value.NewCst(constant.New(int64(tag), constant.DWTag)), nil
}

func attributeDIE(v *value.DIE) (value.Producer, error) {
	dw := v.Dwarf()
	attrs, err := dw.Graph.Attributes(v.Offset())
	if err != nil {
		return nil, errors.Wrapf(err, "attribute", "cannot read attributes of %v", v.Offset())
	}
	vs := make([]value.Value, len(attrs))
	for i, at := range attrs {
		vs[i] = value.NewAttr(dw, v.Offset(), at)
	}
	return value.ProduceSlice(vs...), nil
}

func labelAttr(v *value.Attr) (value.Value, error) { return value.NewCst(v.Name()), nil }
func formAttr(v *value.Attr) (value.Value, error)  { return value.NewCst(v.Form()), nil }

func addDwarf(d *Dict) {
	var parent, child, offset, attribute, form overload.Table
	parent.AddOp(overload.Op1[*value.DIE](parentDIE))
	child.AddOp(overload.Yield1[*value.DIE](childDIE))
	offset.AddOp(overload.Op1[*value.DIE](offsetDIE))
	attribute.AddOp(overload.Yield1[*value.DIE](attributeDIE))
	form.AddOp(overload.Op1[*value.Attr](formAttr))
	addOp(d, "parent", &parent)
	addOp(d, "child", &child)
	addOp(d, "offset", &offset)
	addOp(d, "attribute", &attribute)
	addOp(d, "form", &form)

	// The label of a node is its tag, that of an attribute its name.
	var label, tag overload.Table
	label.AddOp(overload.Op1[*value.DIE](tagDIE))
	label.AddOp(overload.Op1[*value.Attr](labelAttr))
	tag.AddOp(overload.Op1[*value.DIE](tagDIE))
	addOp(d, "label", &label)
	addOp(d, "tag", &tag)

	var root overload.Table
	root.AddPred(overload.Pred1[*value.DIE](rootDIE))
	addPred(d, "root", &root)
}
