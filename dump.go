/*
 * dump.go, part of godg.
 *
 * Copyright 2023 Raul Mera rauldotmeraatusachdotcl
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package dg

import (
	"fmt"
	"sort"
	"strings"
)

//Dot renders the spatial model as a graphviz graph for visual debugging:
//atoms as element-labeled nodes carrying their modeled angles in the
//tooltip, bonds as edges labeled with their distance intervals.
func (m *Model) Dot() string {
	var b strings.Builder
	b.WriteString("graph spatialmodel {\n")
	b.WriteString("  node [shape=circle, style=filled, fillcolor=white];\n")
	angleInfo := make(map[int][]string)
	var akeys [][3]int
	for key := range m.angleB {
		akeys = append(akeys, key)
	}
	sort.Slice(akeys, func(i, j int) bool {
		a, c := akeys[i], akeys[j]
		if a[1] != c[1] {
			return a[1] < c[1]
		}
		if a[0] != c[0] {
			return a[0] < c[0]
		}
		return a[2] < c[2]
	})
	for _, key := range akeys {
		ang := m.angleB[key]
		angleInfo[key[1]] = append(angleInfo[key[1]],
			fmt.Sprintf("%d-%d-%d: %s", key[0], key[1], key[2], ang.String()))
	}
	for i := 0; i < m.mol.Len(); i++ {
		tooltip := strings.Join(angleInfo[i], "&#10;")
		fmt.Fprintf(&b, "  %d [label=\"%s%d\", tooltip=\"%s\"];\n",
			i, m.mol.Symbol(i), i, tooltip)
	}
	var bkeys [][2]int
	for key := range m.bondB {
		bkeys = append(bkeys, key)
	}
	sort.Slice(bkeys, func(i, j int) bool {
		if bkeys[i][0] != bkeys[j][0] {
			return bkeys[i][0] < bkeys[j][0]
		}
		return bkeys[i][1] < bkeys[j][1]
	})
	for _, key := range bkeys {
		fmt.Fprintf(&b, "  %d -- %d [label=\"%s\"];\n", key[0], key[1], m.bondB[key].String())
	}
	b.WriteString("}\n")
	return b.String()
}
