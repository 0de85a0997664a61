/*
 * doc.go, part of godg.
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

/*Package dg generates three-dimensional conformations for molecules given only
their connectivity graph and stereochemical assignments, using the Distance
Geometry method.


	**goDG capabilities**

    Builds a spatial model from a molecular graph: pairwise distance bounds
	from bond lengths, local-geometry angles and dihedral restrictions, exact
	internal angles for small flat rings, and chirality constraints from
	stereocenters.

    Smooths the distance bounds to full triangle-inequality consistency and
	samples concrete distance matrices from them (metrization, with
	configurable partiality).

    Embeds distance matrices into four-dimensional coordinates through the
	eigendecomposition of a metric (Gram) matrix.

    Refines embedded coordinates against distance, chirality and dihedral
	constraints with staged BFGS minimization, allowing inversion through the
	fourth dimension, which is compressed away in the final stage.

    Generates conformational ensembles concurrently over a worker pool,
	with reproducible per-attempt pseudo-random streams.


All distances are in Angstroms and all angles in radians. The library never
prints to stdout nor writes files on its own; diagnostic products (model
dumps, refinement trajectories) are returned as data, to be consumed by the
traj and dgplot subpackages or by the caller.

The entry points are Ensemble and Conformation. Molecules can be either the
concrete Molecule type of this package or any type satisfying Moleculer.

Failures during generation are expected (Distance Geometry is a randomized
method) and are reported per attempt, classified by Kind. Contract violations
by the caller, on the other hand, cause panics, as in the rest of the
goChem-family libraries.
*/
package dg
