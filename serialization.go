// Copyright 2026 The Cockroach Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package bid

import (
	"github.com/globalsign/mgo/bson"
	"github.com/pkg/errors"
)

// GetBSON implements bson.Getter. BSON stores a decimal128, so d is first
// rounded into that format.
func (d *Decimal) GetBSON() (interface{}, error) {
	var r Decimal
	if _, err := Decimal128Context.Round(&r, d); err != nil {
		return nil, errors.Wrap(err, "GetBSON")
	}
	return bson.ParseDecimal128(r.String())
}

// SetBSON implements bson.Setter.
func (d *Decimal) SetBSON(raw bson.Raw) error {
	var w bson.Decimal128
	if err := raw.Unmarshal(&w); err != nil {
		return errors.Wrap(err, "SetBSON")
	}
	return d.SetString(w.String())
}
